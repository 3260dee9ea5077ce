// Package reload decides whether the web server is reloaded after a run and
// reports the outcome as a status. It never returns an error: by the time it
// runs every config has already been written, so a failed test or reload is
// reported to the operator, not treated as a failed run.
package reload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ksyq12/sitegen/internal/driver"
	"github.com/ksyq12/sitegen/internal/executor"
	"github.com/ksyq12/sitegen/internal/logger"
)

// Status is the outcome of the reload step.
type Status struct {
	Attempted bool        `json:"attempted"`
	Reloaded  bool        `json:"reloaded"`
	Changed   int         `json:"changed"`
	Stage     driver.Step `json:"stage,omitempty"`  // step that failed
	Output    string      `json:"output,omitempty"` // captured diagnostics
	Message   string      `json:"message"`
}

// Failed reports whether a test or reload was attempted and did not succeed.
func (s Status) Failed() bool {
	return s.Attempted && !s.Reloaded
}

func (s Status) String() string {
	return s.Message
}

// Controller runs the test-then-reload sequence of a driver.
type Controller struct {
	drv driver.Driver
}

// New creates a Controller for drv
func New(drv driver.Driver) *Controller {
	return &Controller{drv: drv}
}

// Apply tests and reloads the web server when changed > 0.
// The reload command runs only after a successful test.
func (c *Controller) Apply(ctx context.Context, changed int) (status Status) {
	name := c.drv.Name()
	status = Status{Changed: changed}

	if changed == 0 {
		status.Message = fmt.Sprintf("%s not reloaded: %d files were updated", name, changed)
		return status
	}

	status.Attempted = true
	defer func() {
		if r := recover(); r != nil {
			status.Reloaded = false
			status.Message = fmt.Sprintf("error checking or reloading %s, %s not reloaded: %v", name, name, r)
		}
		logger.DebugFields("reload finished", logger.Fields{
			"server":   name,
			"changed":  changed,
			"reloaded": status.Reloaded,
		})
	}()

	if err := c.drv.Test(ctx); err != nil {
		return failure(status, name, driver.StepTest, err)
	}
	if err := c.drv.Reload(ctx); err != nil {
		return failure(status, name, driver.StepReload, err)
	}

	status.Reloaded = true
	status.Message = fmt.Sprintf("%s reloaded: %d files updated/created", name, changed)
	return status
}

// Skipped is the status when reloading was turned off for the run.
func Skipped(changed int, reason string) Status {
	return Status{
		Changed: changed,
		Message: fmt.Sprintf("reload skipped (%s): %d files updated/created", reason, changed),
	}
}

func failure(status Status, name string, step driver.Step, err error) Status {
	status.Stage = step

	var exitErr *executor.ExitError
	if !errors.As(err, &exitErr) {
		status.Message = fmt.Sprintf("error checking or reloading %s, %s not reloaded: %v", name, name, err)
		return status
	}

	var cmdErr *driver.CommandError
	if errors.As(err, &cmdErr) {
		status.Output = strings.TrimSpace(cmdErr.Output)
	}
	diag := status.Output
	if diag == "" {
		diag = err.Error()
	}

	switch step {
	case driver.StepTest:
		status.Message = fmt.Sprintf("%s configuration test failed: %s", name, diag)
	default:
		status.Message = fmt.Sprintf("failed to reload %s: %s", name, diag)
	}
	return status
}
