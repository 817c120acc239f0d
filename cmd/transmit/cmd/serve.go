/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/api"
	"github.com/ssargent/transmit/pkg/storage"
)

func (c *cli) newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the transmit REST API server. Requests under /api/v1 must carry the
API key in the X-API-Key header; /metrics is open.

Examples:
  transmit serve
  transmit serve --api-key=mysecretkey --port=9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind, _ = cmd.Flags().GetString("bind")
			}
			if key, _ := cmd.Flags().GetString("api-key"); key != "" {
				cfg.Security.APIKey = key
			}
			if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
				return fmt.Errorf("no API key configured, pass --api-key or run 'transmit init' first")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// store metrics go to the same registry /metrics serves
			return c.withStore(func(s *storage.Store) error {
				return c.serve(ctx, s)
			}, storage.WithRegisterer(c.container.GetRegisterer()))
		},
	}

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for request authentication")
	return serveCmd
}

func (c *cli) serve(ctx context.Context, s *storage.Store) error {
	starter := c.container.GetServerFactory().CreateServerStarter()
	config := api.ServerConfig{
		Addr:        c.cfg.Addr(),
		APIKey:      c.cfg.Security.APIKey,
		MaxBodySize: int64(c.cfg.Security.MaxValueSize) * 4,
	}
	return starter.StartServer(ctx, s, c.container.GetCatalog(), config, c.log)
}
