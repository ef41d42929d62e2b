// cmd/appgatewayctl/root.go
// Root command for the `appgatewayctl` operator CLI. It wires common flags
// and global initialisation (logger, viper env prefix) and adds top-level
// sub-commands located in sibling files (resolve.go, validate.go, version.go).
// The --config flag is parsed but no sub-command reads it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rdkcentral/appgateway/internal/logging"
)

var (
	cfgFile string
	logJSON bool

	rootCmd = &cobra.Command{
		Use:   "appgatewayctl",
		Short: "Operator CLI for the app gateway",
		Long:  `appgatewayctl validates resolver configuration, dry-runs method resolution, and reports build metadata for the app gateway.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logging.Initialised() {
				return nil
			}
			return initLogger()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a gateway config file (JSON)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Enable JSON log output (default is human-friendly console)")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig sets the APPGATEWAY env prefix on the global viper instance.
// gateway.LoadConfig builds its own viper instance, so this setting does not
// reach it.
func initConfig() {
	viper.SetEnvPrefix("APPGATEWAY")
	viper.AutomaticEnv()
}

func initLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if logJSON {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	logging.Set(logger)
	return nil
}
