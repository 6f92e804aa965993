// Package cmd is the designdata-mcp command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/designdata-mcp/internal/config"
	"github.com/wagnerlima/designdata-mcp/internal/logging"
)

var bootstrapLogger = logging.Bootstrap()

var rootCmd = &cobra.Command{
	Use:   "designdata-mcp",
	Short: "Wireframe annotation and data-lineage modelling over MCP",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (missing file means defaults)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies the data-dir flag on top.
func loadConfig(cmd *cobra.Command, dataDir string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.Storage.DataDir = dataDir
	}
	return cfg, nil
}
