package cli

import (
	"context"

	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/declaration"
	"github.com/ksyq12/sitegen/internal/output"
	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/ksyq12/sitegen/internal/reconcile"
	"github.com/spf13/cobra"
)

// loadConfig loads the config selected by --config and validates it
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPrinter returns a printer on the command's output streams
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// commandContext returns the command's context, which is nil when a run
// function is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// findSection returns the rendered section with the given name
func findSection(rendered []pipeline.Rendered, name string) (pipeline.Rendered, bool) {
	for _, r := range rendered {
		if r.Section.Name == name {
			return r, true
		}
	}
	return pipeline.Rendered{}, false
}

// sectionNames lists the section names in declaration order
func sectionNames(rendered []pipeline.Rendered) []string {
	names := make([]string, len(rendered))
	for i, r := range rendered {
		names[i] = r.Section.Name
	}
	return names
}

// SectionSummary is the JSON form of a validated section
type SectionSummary struct {
	Section    string `json:"section"`
	Listen     string `json:"listen"`
	ServerName string `json:"server_name"`
	Root       string `json:"root"`
	ConfigPath string `json:"config_path"`
}

func summarize(cfg *config.Config, r pipeline.Rendered) SectionSummary {
	s := r.Section
	return SectionSummary{
		Section:    s.Name,
		Listen:     s.Value(declaration.KeyListen),
		ServerName: s.Value(declaration.KeyServerName),
		Root:       s.Value(declaration.KeyRoot),
		ConfigPath: reconcile.ConfigPath(cfg.OutputDir, s.Name),
	}
}
