/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the qdakit REST API server over the local catalog.

The server answers under /api/v1 and exposes Prometheus metrics on
/metrics. When an API key is configured, requests must carry it in the
X-API-Key header; an empty key disables authentication.

Examples:
  qda serve
  qda serve --port 9000 --bind 0.0.0.0
  qda serve --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		// Flags override the loaded config only when set explicitly
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind = bind
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey = apiKey
		}

		if cfg.Security.APIKey == "auto" {
			return fmt.Errorf("no API key configured: run 'qda init' first, pass --api-key, " +
				"or set security.api_key to \"\" to disable authentication")
		}

		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		}

		return api.StartServer(cat, serverConfig, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the server to")
	serveCmd.Flags().String("api-key", "", "API key protecting the HTTP API (empty disables authentication)")
}
