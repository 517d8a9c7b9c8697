package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vepler/http-sdk/internal/config"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/vepler"
)

var (
	cfg        *config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "vepler",
	Short: "Query the Vepler property and geospatial APIs",
	Long:  "Command-line client for the Vepler services: property records, area reference, schools, crime, planning, address lookup, search and valuation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cmd, c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./config.yaml or $HOME/.vepler/config.yaml)")
	pf.String("env", "", "target environment: production or development")
	pf.StringP("output", "o", "", "output format: json or yaml")
}

// applyFlagOverrides copies explicitly set persistent flags over loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if f := cmd.Flags().Lookup("env"); f != nil && f.Changed {
		c.Environment = f.Value.String()
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		c.Output = f.Value.String()
	}
}

// newSDK validates the loaded config and initializes every service.
func newSDK() (*vepler.SDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rc, env := cfg.Registry()
	return vepler.New(rc, env, registry.WithLogger(zap.L()))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
