package cli

import (
	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check declarations and template without writing anything",
	Long: `Check the configured paths, parse the declarations, validate every
section and render it with the template. Nothing is written and the web
server is not touched.

Examples:
  sitegen validate
  sitegen validate --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rendered, err := pipeline.Prepare(cfg)
	if err != nil {
		return err
	}

	summaries := make([]SectionSummary, 0, len(rendered))
	for _, r := range rendered {
		summaries = append(summaries, summarize(cfg, r))
	}

	printer := newPrinter(cmd)
	if jsonOutput {
		return printer.JSON(summaries)
	}

	if len(summaries) == 0 {
		printer.Warn("No sections declared in %s", cfg.Declarations)
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.Section, s.Listen, s.ServerName, s.ConfigPath})
	}
	printer.Table([]string{"SECTION", "LISTEN", "SERVER_NAME", "CONFIG"}, rows)
	printer.Print("")
	printer.Success("%d sections valid", len(summaries))
	return nil
}
