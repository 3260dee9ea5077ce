package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/driver"
	"github.com/ksyq12/sitegen/internal/output"
	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/ksyq12/sitegen/internal/platform"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks before generating.

Checks:
  - Web server test and reload commands on PATH
  - sudo on PATH when enabled
  - Config file, output directory, template and declarations
  - Declarations parse, validate and render
  - Output directory is one the web server reads
  - Web server configuration test

Examples:
  sitegen doctor
  sitegen doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Check statuses
const (
	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Platform           string        `json:"platform,omitempty"`
	SystemRequirements []CheckResult `json:"system_requirements"`
	Configuration      []CheckResult `json:"configuration"`
}

// Failed counts the checks with error status
func (r *DoctorReport) Failed() int {
	n := 0
	for _, list := range [][]CheckResult{r.SystemRequirements, r.Configuration} {
		for _, c := range list {
			if c.Status == statusError {
				n++
			}
		}
	}
	return n
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := &DoctorReport{}
	report.SystemRequirements = checkSystemRequirements(cfg)
	report.Configuration = checkConfiguration(cmd, cfg)

	include, err := deps.PlatformDetector.DetectPaths(cfg.Server)
	if include != nil {
		report.Platform = include.Platform
	}
	report.Configuration = append(report.Configuration, checkOutputDir(cfg, include, err))

	printer := newPrinter(cmd)
	if jsonOutput {
		if err := printer.JSON(report); err != nil {
			return err
		}
	} else {
		displayDoctorResults(printer, report)
	}

	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d checks failed", n)
	}
	return nil
}

func checkSystemRequirements(cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	commands, ok := driver.Lookup(cfg.Server)
	if !ok {
		return append(results, CheckResult{
			Status:  statusError,
			Message: fmt.Sprintf("No commands registered for %s", cfg.Server),
		})
	}

	binaries := []string{commands.Test[0], commands.Reload[0]}
	if cfg.Sudo {
		binaries = append(binaries, "sudo")
	}

	seen := make(map[string]bool)
	for _, bin := range binaries {
		if seen[bin] {
			continue
		}
		seen[bin] = true

		if path, err := deps.Executor.LookPath(bin); err == nil {
			results = append(results, CheckResult{
				Status:  statusSuccess,
				Message: fmt.Sprintf("%s found (%s)", bin, path),
			})
		} else {
			results = append(results, CheckResult{
				Status:  statusError,
				Message: fmt.Sprintf("%s not found in PATH", bin),
			})
		}
	}

	return results
}

func checkConfiguration(cmd *cobra.Command, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	if cfg.Source != "" {
		results = append(results, CheckResult{
			Status:  statusSuccess,
			Message: fmt.Sprintf("Config file loaded (%s)", cfg.Source),
		})
	} else {
		results = append(results, CheckResult{
			Status:  statusWarning,
			Message: fmt.Sprintf("No config file at %s, using built-in defaults", config.DefaultPath),
		})
	}

	rendered, err := pipeline.Prepare(cfg)
	if err != nil {
		results = append(results, CheckResult{
			Status:  statusError,
			Message: err.Error(),
		})
	} else {
		results = append(results, CheckResult{
			Status:  statusSuccess,
			Message: fmt.Sprintf("%d sections valid (%s)", len(rendered), strings.Join(sectionNames(rendered), ", ")),
		})
	}

	if info, err := os.Stat(cfg.SiteRoot); err != nil {
		results = append(results, CheckResult{
			Status:  statusWarning,
			Message: fmt.Sprintf("Site root %s does not exist yet, it will be created", cfg.SiteRoot),
		})
	} else if !info.IsDir() {
		results = append(results, CheckResult{
			Status:  statusError,
			Message: fmt.Sprintf("Site root %s is not a directory", cfg.SiteRoot),
		})
	}

	drv, err := deps.DriverFactory.Create(cfg, deps.Executor)
	if err != nil {
		return append(results, CheckResult{Status: statusError, Message: err.Error()})
	}
	if err := drv.Test(commandContext(cmd)); err == nil {
		results = append(results, CheckResult{
			Status:  statusSuccess,
			Message: fmt.Sprintf("%s configuration test passed", drv.Name()),
		})
	} else {
		results = append(results, CheckResult{
			Status:  statusError,
			Message: fmt.Sprintf("%s configuration test failed: %v", drv.Name(), err),
		})
	}

	return results
}

// checkOutputDir warns when configs are generated into a directory the web
// server does not read by default
func checkOutputDir(cfg *config.Config, include *platform.IncludePaths, err error) CheckResult {
	switch {
	case err != nil:
		return CheckResult{
			Status:  statusWarning,
			Message: fmt.Sprintf("Could not detect %s include directories: %v", cfg.Server, err),
		}
	case include.Includes(cfg.OutputDir):
		return CheckResult{
			Status:  statusSuccess,
			Message: fmt.Sprintf("Output directory %s is read by %s", cfg.OutputDir, cfg.Server),
		}
	case include.Detected != "":
		return CheckResult{
			Status: statusWarning,
			Message: fmt.Sprintf("Output directory %s is not a standard %s include directory (found %s), make sure it is included",
				cfg.OutputDir, cfg.Server, include.Detected),
		}
	default:
		return CheckResult{
			Status: statusWarning,
			Message: fmt.Sprintf("No standard %s include directory found on %s (checked %s)",
				cfg.Server, include.Platform, strings.Join(include.Candidates, ", ")),
		}
	}
}

func displayDoctorResults(printer *output.Printer, report *DoctorReport) {
	if report.Platform != "" {
		printer.Info("Platform: %s", report.Platform)
	}
	printer.Print("Checking system requirements...")
	for _, check := range report.SystemRequirements {
		displayCheck(printer, check)
	}
	printer.Print("")

	printer.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(printer, check)
	}
}

func displayCheck(printer *output.Printer, check CheckResult) {
	switch check.Status {
	case statusSuccess:
		printer.Success("%s", check.Message)
	case statusWarning:
		printer.Warn("%s", check.Message)
	case statusError:
		printer.Error("%s", check.Message)
	}
}
