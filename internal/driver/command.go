package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ksyq12/sitegen/internal/executor"
	"github.com/ksyq12/sitegen/internal/logger"
)

// CommandDriver implements Driver by running external commands
type CommandDriver struct {
	name     string
	commands Commands
	sudo     bool
	timeout  time.Duration
	exec     executor.CommandExecutor
}

// Options configures a CommandDriver.
type Options struct {
	// Sudo prefixes every command with sudo.
	Sudo bool
	// Timeout bounds each command; zero means no limit.
	Timeout time.Duration
}

// New creates a driver for a registered server using the system executor
func New(name string, opts Options) (*CommandDriver, error) {
	return NewWithExecutor(name, opts, executor.NewSystemExecutor())
}

// NewWithExecutor creates a driver for a registered server with a custom executor (for testing)
func NewWithExecutor(name string, opts Options, exec executor.CommandExecutor) (*CommandDriver, error) {
	commands, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown driver: %s (available: %s)", name, strings.Join(Available(), ", "))
	}
	return NewWithCommands(name, commands, opts, exec), nil
}

// NewWithCommands creates a driver running the given commands
func NewWithCommands(name string, commands Commands, opts Options, exec executor.CommandExecutor) *CommandDriver {
	return &CommandDriver{
		name:     name,
		commands: commands,
		sudo:     opts.Sudo,
		timeout:  opts.Timeout,
		exec:     exec,
	}
}

// Name returns the driver name
func (d *CommandDriver) Name() string {
	return d.name
}

// Test runs the config test command, e.g. sudo nginx -t
func (d *CommandDriver) Test(ctx context.Context) error {
	return d.run(ctx, StepTest, d.commands.Test)
}

// Reload runs the reload command, e.g. sudo systemctl reload nginx
func (d *CommandDriver) Reload(ctx context.Context) error {
	return d.run(ctx, StepReload, d.commands.Reload)
}

// Argv returns the full command line of a step, including sudo.
func (d *CommandDriver) Argv(step Step) []string {
	var argv []string
	if d.sudo {
		argv = append(argv, "sudo")
	}
	switch step {
	case StepTest:
		argv = append(argv, d.commands.Test...)
	case StepReload:
		argv = append(argv, d.commands.Reload...)
	}
	return argv
}

func (d *CommandDriver) run(ctx context.Context, step Step, command []string) error {
	argv := d.Argv(step)
	if len(command) == 0 {
		return &CommandError{Step: step, Command: d.name, Err: fmt.Errorf("no %s command configured", step)}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	logger.DebugFields("running command", logger.Fields{
		"step":    string(step),
		"command": strings.Join(argv, " "),
	})

	output, err := d.exec.Execute(ctx, argv[0], argv[1:]...)
	if err != nil {
		return &CommandError{
			Step:    step,
			Command: strings.Join(argv, " "),
			Output:  string(output),
			Err:     err,
		}
	}
	return nil
}
