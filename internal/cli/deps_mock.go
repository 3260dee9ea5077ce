package cli

import (
	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/driver"
	"github.com/ksyq12/sitegen/internal/executor"
	"github.com/ksyq12/sitegen/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg     *config.Config
	LoadErr error
	Paths   []string // paths passed to Load
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.Default()
	}
	return m.Cfg, nil
}

// MockDriverFactory is a test double for DriverFactory
type MockDriverFactory struct {
	Driver driver.Driver
	Err    error
	Calls  int
}

func (m *MockDriverFactory) Create(cfg *config.Config, exec executor.CommandExecutor) (driver.Driver, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Driver != nil {
		return m.Driver, nil
	}
	// Return a default mock driver if none provided
	return driver.NewMockDriver(cfg.Server), nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Paths *platform.IncludePaths
	Err   error
}

func (m *MockPlatformDetector) DetectPaths(server string) (*platform.IncludePaths, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Paths != nil {
		return m.Paths, nil
	}
	// Return default linux paths
	return &platform.IncludePaths{
		Platform:   "linux/amd64",
		Server:     server,
		Candidates: []string{"/etc/nginx/conf.d", "/etc/nginx/sites-enabled"},
		Detected:   "/etc/nginx/conf.d",
	}, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.Default()},
			DriverFactory:    &MockDriverFactory{},
			PlatformDetector: &MockPlatformDetector{},
			Executor:         &executor.MockExecutor{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithDriver sets the driver for the mock
func (b *MockDependenciesBuilder) WithDriver(drv driver.Driver) *MockDependenciesBuilder {
	b.deps.DriverFactory = &MockDriverFactory{Driver: drv}
	return b
}

// WithDriverFactory sets a custom driver factory
func (b *MockDependenciesBuilder) WithDriverFactory(factory DriverFactory) *MockDependenciesBuilder {
	b.deps.DriverFactory = factory
	return b
}

// WithPlatformPaths sets the detected include paths
func (b *MockDependenciesBuilder) WithPlatformPaths(paths *platform.IncludePaths) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Paths: paths}
	return b
}

// WithPlatformError sets an error for platform detection
func (b *MockDependenciesBuilder) WithPlatformError(err error) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Err: err}
	return b
}

// WithExecutor sets the executor used for PATH lookups and drivers
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps    *Dependencies
	MockDriver *driver.MockDriver
	MockConfig *MockConfigLoader
	MockExec   *executor.MockExecutor
}

// NewTestHelper installs mock dependencies serving cfg and restores the
// previous ones when the test ends
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, cfg *config.Config) *TestHelper {
	t.Helper()

	mockDriver := driver.NewMockDriver(cfg.Server)
	mockConfig := &MockConfigLoader{Cfg: cfg}
	mockExec := &executor.MockExecutor{}

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		MockDriver: mockDriver,
		MockConfig: mockConfig,
		MockExec:   mockExec,
	}

	deps = NewMockDeps().
		WithDriver(mockDriver).
		WithConfigLoader(mockConfig).
		WithExecutor(mockExec).
		Build()

	// Cleanup function to restore original deps
	t.Cleanup(func() {
		deps = helper.OldDeps
	})

	return helper
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}
