// Package reconcile writes rendered site configs only when they differ from
// what is on disk, and provisions each site's document-root directory.
package reconcile

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ksyq12/sitegen/internal/declaration"
	sgerrors "github.com/ksyq12/sitegen/internal/errors"
)

// Action is what reconciliation did, or would do, for one section.
type Action string

// Reconciliation actions.
const (
	ActionUnchanged Action = "unchanged" // file exists with identical content
	ActionCreated   Action = "created"   // file did not exist
	ActionUpdated   Action = "updated"   // file existed with different content
)

// Changed reports whether the action writes the config file.
func (a Action) Changed() bool {
	return a == ActionCreated || a == ActionUpdated
}

// Outcome describes the reconciliation of one section.
type Outcome struct {
	Section    string `json:"section"`
	ConfigPath string `json:"config_path"`
	SiteDir    string `json:"site_dir"`
	Action     Action `json:"action"`
}

const (
	defaultFileMode fs.FileMode = 0644
	defaultDirMode  fs.FileMode = 0755
)

// Reconciler applies rendered configs under OutputDir and site directories under SiteRoot.
type Reconciler struct {
	OutputDir string
	SiteRoot  string
}

// New creates a Reconciler for the given directories
func New(outputDir, siteRoot string) *Reconciler {
	return &Reconciler{OutputDir: outputDir, SiteRoot: siteRoot}
}

// ConfigPath returns <outputDir>/<section>.conf
func ConfigPath(outputDir, section string) string {
	return filepath.Join(outputDir, section+".conf")
}

// SiteDir returns <siteRoot>/<serverName>
func SiteDir(siteRoot, serverName string) string {
	return filepath.Join(siteRoot, serverName)
}

// Plan compares rendered against the file on disk without changing anything.
func (r *Reconciler) Plan(s declaration.Section, rendered string) (Outcome, error) {
	out := Outcome{
		Section:    s.Name,
		ConfigPath: ConfigPath(r.OutputDir, s.Name),
		SiteDir:    SiteDir(r.SiteRoot, s.Value(declaration.KeyServerName)),
	}

	existing, err := os.ReadFile(out.ConfigPath)
	switch {
	case os.IsNotExist(err):
		out.Action = ActionCreated
	case err != nil:
		return out, sgerrors.Write(s.Name, out.ConfigPath, "cannot read existing config", err)
	case bytes.Equal(existing, []byte(rendered)):
		out.Action = ActionUnchanged
	default:
		out.Action = ActionUpdated
	}
	return out, nil
}

// Apply writes the config when it changed and then creates the site directory.
// An identical existing file leaves both the file and the site directory alone.
func (r *Reconciler) Apply(s declaration.Section, rendered string) (Outcome, error) {
	out, err := r.Plan(s, rendered)
	if err != nil || !out.Action.Changed() {
		return out, err
	}

	if err := writeFileAtomic(out.ConfigPath, []byte(rendered)); err != nil {
		return out, sgerrors.Write(s.Name, out.ConfigPath, "cannot write config", err)
	}

	if err := os.MkdirAll(out.SiteDir, defaultDirMode); err != nil {
		return out, sgerrors.Write(s.Name, out.SiteDir, "cannot create site directory", err)
	}

	return out, nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers see either the old or the new content. The mode of an
// existing file is kept.
func writeFileAtomic(path string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to destination: %w", err)
	}

	success = true
	return nil
}
