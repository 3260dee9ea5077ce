package cli

import (
	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	noReload bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render declarations, write changed configs and reload",
	Long: `Render every declared site with the template, write the configs that
changed, create missing site directories and reload the web server when at
least one file changed.

All sections are validated before anything is written. A reload failure is
reported but does not fail the command.

Examples:
  sitegen generate
  sitegen generate --dry-run
  sitegen generate --no-reload --json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, generateCmd} {
		c.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing or reloading")
		c.Flags().BoolVar(&noReload, "no-reload", false, "Write changed configs but do not test or reload the server")
	}
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	opts := pipeline.Options{
		DryRun:   dryRun,
		NoReload: noReload,
	}
	if !jsonOutput {
		opts.Reporter = printer
	}
	if !dryRun && !noReload {
		drv, err := deps.DriverFactory.Create(cfg, deps.Executor)
		if err != nil {
			return err
		}
		opts.Driver = drv
	}

	result, err := pipeline.Run(commandContext(cmd), cfg, opts)
	if err != nil {
		if n := result.Written(); n > 0 {
			printer.Error("%d files were written before the failure and were kept", n)
		}
		return err
	}

	if jsonOutput {
		return printer.JSON(result)
	}
	printer.Reload(result.Reload)
	return nil
}
