// Package platform finds the directories a web server reads per-site configs
// from on the current host, so a misconfigured output directory can be
// spotted before configs are generated into a place nothing includes.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// IncludePaths describes where a web server reads per-site configs.
type IncludePaths struct {
	Platform   string   `json:"platform"`
	Server     string   `json:"server"`
	Candidates []string `json:"candidates"`         // standard locations, most common first
	Detected   string   `json:"detected,omitempty"` // first candidate present on this host
}

// Includes reports whether dir is one of the standard locations.
func (p *IncludePaths) Includes(dir string) bool {
	return slices.Contains(p.Candidates, filepath.Clean(dir))
}

// includeDirs lists the standard include directories per OS and server.
var includeDirs = map[string]map[string][]string{
	"linux": {
		"nginx":  {"/etc/nginx/conf.d", "/etc/nginx/sites-enabled"},
		"apache": {"/etc/apache2/sites-enabled", "/etc/httpd/conf.d"},
		"caddy":  {"/etc/caddy/conf.d", "/etc/caddy/sites-enabled"},
	},
	"darwin": {
		// Apple Silicon Homebrew first, then Intel
		"nginx":  {"/opt/homebrew/etc/nginx/servers", "/usr/local/etc/nginx/servers"},
		"apache": {"/opt/homebrew/etc/httpd/extra/vhosts", "/usr/local/etc/httpd/extra/vhosts"},
		"caddy":  {"/opt/homebrew/etc/caddy/sites-enabled", "/usr/local/etc/caddy/sites-enabled"},
	},
}

// Detector looks up include directories for one OS.
type Detector struct {
	GOOS   string
	GOARCH string
	Exists func(path string) bool
}

// NewDetector returns a Detector for the running host.
func NewDetector() *Detector {
	return &Detector{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		Exists: pathExists,
	}
}

// DetectPaths returns the include directories of server on this platform.
// Finding none of them on disk is not an error; Detected is left empty.
func (d *Detector) DetectPaths(server string) (*IncludePaths, error) {
	servers, ok := includeDirs[d.GOOS]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", d.GOOS)
	}
	candidates, ok := servers[server]
	if !ok {
		return nil, fmt.Errorf("unknown server: %s (available: nginx, apache, caddy)", server)
	}

	paths := &IncludePaths{
		Platform:   d.Platform(),
		Server:     server,
		Candidates: slices.Clone(candidates),
	}
	for _, dir := range candidates {
		if d.Exists(dir) {
			paths.Detected = dir
			break
		}
	}
	return paths, nil
}

// Platform returns a string describing the platform.
func (d *Detector) Platform() string {
	return fmt.Sprintf("%s/%s", d.GOOS, d.GOARCH)
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
