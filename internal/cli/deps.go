package cli

import (
	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/driver"
	"github.com/ksyq12/sitegen/internal/executor"
	"github.com/ksyq12/sitegen/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	DriverFactory    DriverFactory
	PlatformDetector PlatformDetector
	Executor         executor.CommandExecutor
}

// ConfigLoader handles configuration loading
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// DriverFactory creates the driver for the configured web server
type DriverFactory interface {
	Create(cfg *config.Config, exec executor.CommandExecutor) (driver.Driver, error)
}

// PlatformDetector handles include directory detection
type PlatformDetector interface {
	DetectPaths(server string) (*platform.IncludePaths, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	DriverFactory:    &realDriverFactory{},
	PlatformDetector: platform.NewDetector(),
	Executor:         executor.NewSystemExecutor(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	return config.Load(path)
}

type realDriverFactory struct{}

func (r *realDriverFactory) Create(cfg *config.Config, exec executor.CommandExecutor) (driver.Driver, error) {
	drv, err := driver.NewWithExecutor(cfg.Server, driver.Options{
		Sudo:    cfg.Sudo,
		Timeout: cfg.CommandTimeout,
	}, exec)
	if err != nil {
		return nil, err
	}
	return drv, nil
}
