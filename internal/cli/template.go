package cli

import (
	"fmt"
	"strings"

	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/template"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template [server]",
	Short: "Print the built-in starter template for a web server",
	Long: `Print the built-in starter template. Without an argument the server
from the config is used.

Placeholders are {listen}, {server_name} and {root}. Literal braces are
written as {{ and }}.

Examples:
  sitegen template
  sitegen template apache > /opt/nginx-conf-maker/template.conf`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.ValidServers(),
	RunE:      runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	var server string
	if len(args) == 1 {
		server = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		server = cfg.Server
	}

	if !config.IsValidServer(server) {
		return fmt.Errorf("invalid server: %s. Valid servers: %s",
			server, strings.Join(config.ValidServers(), ", "))
	}

	content, err := template.Default(server)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), content)
	return err
}
