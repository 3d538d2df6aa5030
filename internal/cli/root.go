// internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/genbench/genbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	configErr     error
)

var rootCmd = &cobra.Command{
	Use:   "genbench",
	Short: "genbench — benchmark a data-generation engine across versions and process counts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Read the config file into viper (missing file is fine here;
		//    commands that need a config report it themselves).
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "plain"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}

		// 3) Materialize the structured configuration (flags > config > defaults)
		//    into currentConfig so other packages get a stable snapshot.
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			currentConfig, configErr = nil, err
			return nil
		}
		cfg.Debug = viper.GetBool("debug")
		cfg.Plain = viper.GetBool("plain")
		currentConfig, configErr = &cfg, nil

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --config (defaults to your existing path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("plain", false, "disable the interactive progress display")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("plain", rootCmd.PersistentFlags().Lookup("plain"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config into viper and sets safe defaults.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)
	viper.SetDefault("plain", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
// It is nil when no usable config file was found.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// requireConfig returns the loaded configuration, or the load error for
// commands that cannot run without one.
func requireConfig() (*appconfig.Config, error) {
	if currentConfig == nil {
		if configErr != nil {
			return nil, configErr
		}
		return nil, fmt.Errorf("no configuration loaded")
	}
	return currentConfig, nil
}

// Helper accessors (reflect merged Viper state)
func DebugEnabled() bool { return viper.GetBool("debug") }
func PlainEnabled() bool { return viper.GetBool("plain") }
