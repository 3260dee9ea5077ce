package driver

import "context"

// MockDriver is a test double for Driver interface
type MockDriver struct {
	name string

	// Function mocks - set these to customize behavior
	TestFunc   func() error
	ReloadFunc func() error

	// Call tracking - check these to verify interactions
	TestCalls   int
	ReloadCalls int
}

// NewMockDriver creates a new MockDriver whose commands succeed
func NewMockDriver(name string) *MockDriver {
	return &MockDriver{name: name}
}

// Name returns the driver name
func (m *MockDriver) Name() string {
	return m.name
}

// Test records the call and invokes the mock function if set
func (m *MockDriver) Test(ctx context.Context) error {
	m.TestCalls++
	if m.TestFunc != nil {
		return m.TestFunc()
	}
	return nil
}

// Reload records the call and invokes the mock function if set
func (m *MockDriver) Reload(ctx context.Context) error {
	m.ReloadCalls++
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return nil
}

// Reset clears all call tracking
func (m *MockDriver) Reset() {
	m.TestCalls = 0
	m.ReloadCalls = 0
}
