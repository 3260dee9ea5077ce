package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	sgerrors "github.com/ksyq12/sitegen/internal/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "/etc/sitegen/config.yaml"

// Config represents the application configuration
type Config struct {
	OutputDir      string        `yaml:"output_dir" json:"output_dir"`
	Template       string        `yaml:"template" json:"template"`
	Declarations   string        `yaml:"declarations" json:"declarations"`
	SiteRoot       string        `yaml:"site_root" json:"site_root"`
	Server         string        `yaml:"server" json:"server"`
	Sudo           bool          `yaml:"sudo" json:"sudo"`
	CommandTimeout time.Duration `yaml:"command_timeout" json:"command_timeout"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-" json:"source,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		OutputDir:      "/etc/nginx/conf.d",
		Template:       "/opt/nginx-conf-maker/template.conf",
		Declarations:   "/opt/nginx-conf-maker/params.ini",
		SiteRoot:       "/storage/www",
		Server:         ServerNginx,
		Sudo:           true,
		CommandTimeout: 60 * time.Second,
	}
}

// Load reads the config at path over the defaults.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, sgerrors.Config(path, "failed to read config", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, sgerrors.Config(path, "failed to parse config", err)
	}
	cfg.Source = path

	return cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	paths := []struct {
		key   string
		value string
	}{
		{"output_dir", c.OutputDir},
		{"template", c.Template},
		{"declarations", c.Declarations},
		{"site_root", c.SiteRoot},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			return sgerrors.Config(c.Source, fmt.Sprintf("%s must not be empty", p.key), nil)
		}
	}

	if !IsValidServer(c.Server) {
		return sgerrors.Config(c.Source, fmt.Sprintf("invalid server: %s. Valid servers: %s",
			c.Server, strings.Join(ValidServers(), ", ")), nil)
	}

	if c.CommandTimeout <= 0 {
		return sgerrors.Config(c.Source, "command_timeout must be positive", nil)
	}

	return nil
}
