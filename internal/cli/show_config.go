// internal/cli/show_config.go
package cli

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/genbench/genbench/internal/appconfig"
)

// showConfigCmd prints the merged configuration, confirming that the JSON
// config is loaded properly and overridden by flags accordingly.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
		if cfg != nil && cfg.Debug {
			pp.Println(cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
