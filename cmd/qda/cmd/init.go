/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap qdakit configuration",
	Long: `Create the qdakit configuration file and data directory, generating
an API key for the REST server.

This command will:
- Write a config file with secure permissions
- Generate a random API key for the HTTP API
- Create the data directory that holds the catalog

Examples:
  qda init
  qda init --data-dir ./mydata --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		printKey, _ := cmd.Flags().GetBool("print-key")
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to recreate.\n", path)
			return nil
		}

		bootstrapped, err := config.BootstrapConfig(path, dataDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(bootstrapped.DataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		cmd.Printf("Configuration created at %s\n", path)
		cmd.Printf("Data directory: %s\n", bootstrapped.DataDir)
		if printKey {
			cmd.Printf("API key: %s\n", bootstrapped.Security.APIKey)
		} else {
			cmd.Printf("An API key was generated and saved in the config file.\n")
		}
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  qda serve\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("data-dir", "d", "", "Data directory (default: ./data)")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key to the console")
	initCmd.Flags().Bool("force", false, "Recreate the configuration even if it exists")
}
