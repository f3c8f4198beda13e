package main

import (
	"github.com/spf13/cobra"

	"github.com/sozercan/repo-analyzer/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer web page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		return server.New(*cfg, a).Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides SERVER_HOST)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}
