/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kaleidalab/qdakit/pkg/catalog"
	"github.com/kaleidalab/qdakit/pkg/config"
	"github.com/kaleidalab/qdakit/pkg/logging"
)

var (
	cfgFile      string
	catalogDir   string
	logLevel     string
	outputFormat string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qda",
	Short: "qdakit - KaleidaGraph QDA data file toolkit",
	Long: `qdakit reads and writes KaleidaGraph QDA data files, converts them
to modern formats, and keeps a local catalog of the files it has seen.

Examples:
  qda info results.qda
  qda export results.qda results.parquet
  qda scan ./measurements
  qda serve --port 8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(path) {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		var err error
		logger, err = logging.New(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "Catalog directory (default: <data-dir>/catalog)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "table", "output format (table or json)")
}

// catalogPath resolves the catalog directory from flags and config.
func catalogPath() string {
	if catalogDir != "" {
		return catalogDir
	}
	return filepath.Join(cfg.DataDir, "catalog")
}

// openCatalog opens the catalog, creating it on first use.
func openCatalog() (*catalog.Catalog, error) {
	return catalog.Open(catalogPath())
}
