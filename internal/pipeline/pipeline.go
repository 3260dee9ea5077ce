// Package pipeline runs one generation pass: it checks the configured paths,
// loads the template, parses and validates the declarations, renders every
// section, reconciles the output files in declaration order and finally hands
// the changed count to the reload controller.
package pipeline

import (
	"context"
	"os"

	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/declaration"
	"github.com/ksyq12/sitegen/internal/driver"
	sgerrors "github.com/ksyq12/sitegen/internal/errors"
	"github.com/ksyq12/sitegen/internal/logger"
	"github.com/ksyq12/sitegen/internal/reconcile"
	"github.com/ksyq12/sitegen/internal/reload"
	"github.com/ksyq12/sitegen/internal/template"
)

// Reporter receives the outcome of each section as it is reconciled.
type Reporter interface {
	Section(o reconcile.Outcome, dryRun bool)
}

// Options controls a run.
type Options struct {
	DryRun   bool          // plan only: no writes, no directories, no reload
	NoReload bool          // write files but skip the reload controller
	Reporter Reporter      // optional
	Driver   driver.Driver // nil builds one from the config
}

// Result summarizes a run.
type Result struct {
	Changed  int                 `json:"changed"`
	Sections []reconcile.Outcome `json:"sections"`
	Reload   reload.Status       `json:"reload"`
	DryRun   bool                `json:"dry_run"`
}

// Rendered is a validated section with its rendered config.
type Rendered struct {
	Section declaration.Section
	Config  string
}

// CheckPreconditions verifies that the output directory, the template and
// the declaration source exist before anything is read or written.
func CheckPreconditions(cfg *config.Config) error {
	if err := requireDir(cfg.OutputDir, "output directory does not exist"); err != nil {
		return err
	}
	if err := requireFile(cfg.Template, "template file not found"); err != nil {
		return err
	}
	return requireFile(cfg.Declarations, "declaration source not found")
}

func requireDir(path, msg string) error {
	info, err := os.Stat(path)
	if err != nil {
		return sgerrors.Precondition(path, msg)
	}
	if !info.IsDir() {
		return sgerrors.Precondition(path, "not a directory")
	}
	return nil
}

func requireFile(path, msg string) error {
	info, err := os.Stat(path)
	if err != nil {
		return sgerrors.Precondition(path, msg)
	}
	if info.IsDir() {
		return sgerrors.Precondition(path, "is a directory, expected a file")
	}
	return nil
}

// Prepare runs every stage that does not touch the output: preconditions,
// template, parsing, validation and rendering. All sections are validated
// and rendered before any of them is returned.
func Prepare(cfg *config.Config) ([]Rendered, error) {
	if err := CheckPreconditions(cfg); err != nil {
		return nil, err
	}

	tmpl, err := template.Load(cfg.Template)
	if err != nil {
		return nil, err
	}
	logger.DebugFields("template loaded", logger.Fields{
		"path":         cfg.Template,
		"placeholders": tmpl.Placeholders(),
	})

	sections, err := declaration.ParseFile(cfg.Declarations)
	if err != nil {
		return nil, err
	}
	logger.DebugFields("declarations parsed", logger.Fields{
		"path":     cfg.Declarations,
		"sections": len(sections),
	})

	if err := declaration.ValidateAll(sections); err != nil {
		return nil, err
	}

	rendered := make([]Rendered, 0, len(sections))
	for _, s := range sections {
		out, err := tmpl.Render(s)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, Rendered{Section: s, Config: out})
	}
	return rendered, nil
}

// Run executes the whole pipeline against cfg.
//
// A fatal error aborts the run. If it happens while writing, the returned
// Result still lists the sections reconciled before the failure, since
// their files stay on disk.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	rendered, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	rec := reconcile.New(cfg.OutputDir, cfg.SiteRoot)

	for _, r := range rendered {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var outcome reconcile.Outcome
		if opts.DryRun {
			outcome, err = rec.Plan(r.Section, r.Config)
		} else {
			outcome, err = rec.Apply(r.Section, r.Config)
		}
		if err != nil {
			return result, err
		}

		logger.DebugFields("section reconciled", logger.Fields{
			"section": outcome.Section,
			"path":    outcome.ConfigPath,
			"action":  string(outcome.Action),
		})

		result.Sections = append(result.Sections, outcome)
		if outcome.Action.Changed() {
			result.Changed++
		}
		if opts.Reporter != nil {
			opts.Reporter.Section(outcome, opts.DryRun)
		}
	}

	switch {
	case opts.DryRun:
		result.Reload = reload.Skipped(result.Changed, "dry run")
	case opts.NoReload:
		result.Reload = reload.Skipped(result.Changed, "--no-reload")
	default:
		drv := opts.Driver
		if drv == nil {
			cmdDrv, err := driver.New(cfg.Server, driver.Options{
				Sudo:    cfg.Sudo,
				Timeout: cfg.CommandTimeout,
			})
			if err != nil {
				return result, sgerrors.Config(cfg.Source, "cannot create server driver", err)
			}
			drv = cmdDrv
		}
		result.Reload = reload.New(drv).Apply(ctx, result.Changed)
	}

	return result, nil
}

// Written counts the sections whose files were written, for reporting a run
// that failed part way.
func (r *Result) Written() int {
	if r == nil || r.DryRun {
		return 0
	}
	return r.Changed
}
