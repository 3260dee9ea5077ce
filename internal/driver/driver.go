package driver

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Driver is the interface for the web server a generated config belongs to
type Driver interface {
	// Name returns the driver name (nginx, apache, caddy)
	Name() string

	// Test validates the web server config syntax
	Test(ctx context.Context) error

	// Reload tells the running web server to adopt the new config
	Reload(ctx context.Context) error
}

// Step names the command a CommandError comes from.
type Step string

// Driver steps.
const (
	StepTest   Step = "test"
	StepReload Step = "reload"
)

// CommandError is returned by Test and Reload with the command's captured output.
type CommandError struct {
	Step    Step
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Commands are the argv of the test and reload commands, without sudo.
type Commands struct {
	Test   []string
	Reload []string
}

// registry holds the commands of every supported web server
var registry = map[string]Commands{
	"nginx": {
		Test:   []string{"nginx", "-t"},
		Reload: []string{"systemctl", "reload", "nginx"},
	},
	"apache": {
		Test:   []string{"apache2ctl", "configtest"},
		Reload: []string{"systemctl", "reload", "apache2"},
	},
	"caddy": {
		Test:   []string{"caddy", "validate", "--config", "/etc/caddy/Caddyfile"},
		Reload: []string{"systemctl", "reload", "caddy"},
	},
}

// Lookup returns the commands registered for a server
func Lookup(name string) (Commands, bool) {
	c, ok := registry[name]
	return c, ok
}

// Available returns all registered driver names, sorted
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
