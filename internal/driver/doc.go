// Package driver runs the configuration test and reload commands of the web
// server that sitegen generates configs for.
//
// # Supported Web Servers
//
//   - nginx: nginx -t, systemctl reload nginx
//   - apache: apache2ctl configtest, systemctl reload apache2
//   - caddy: caddy validate --config /etc/caddy/Caddyfile, systemctl reload caddy
//
// # Basic Usage
//
//	drv, err := driver.New("nginx", driver.Options{
//	    Sudo:    true,
//	    Timeout: time.Minute,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := drv.Test(ctx); err != nil {
//	    // *driver.CommandError with the captured output
//	}
//
// # Testing
//
// NewWithExecutor accepts a mock executor.CommandExecutor for testing without
// actual system calls:
//
//	mockExec := &executor.MockExecutor{}
//	drv, _ := driver.NewWithExecutor("nginx", driver.Options{}, mockExec)
//
// Code that only needs the Driver interface can use MockDriver instead.
//
// # Error Handling
//
// Test and Reload return a *CommandError holding the step, the command line
// and its combined output. Its Err is an *executor.ExitError when the command
// ran and failed, and some other error when it could not be run or timed out.
package driver
