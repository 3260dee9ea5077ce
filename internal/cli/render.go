package cli

import (
	"fmt"
	"strings"

	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <section>",
	Short: "Print the rendered config of one section",
	Long: `Render one declared section with the template and print the result.
Every section is still validated first, as in generate.

Examples:
  sitegen render siteA
  sitegen render siteA > /tmp/siteA.conf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

// renderResult is the JSON output of the render command
type renderResult struct {
	Section string `json:"section"`
	Config  string `json:"config"`
}

func runRender(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rendered, err := pipeline.Prepare(cfg)
	if err != nil {
		return err
	}

	r, ok := findSection(rendered, name)
	if !ok {
		return fmt.Errorf("section [%s] not found in %s (declared: %s)",
			name, cfg.Declarations, strings.Join(sectionNames(rendered), ", "))
	}

	if jsonOutput {
		return newPrinter(cmd).JSON(renderResult{Section: name, Config: r.Config})
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), r.Config)
	return err
}
