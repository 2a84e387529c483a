package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"tagdiff/internal/server"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filter engine over HTTP",
		Long: `The serve command starts an HTTP API that filters trees sent by clients.

Endpoints:
  POST /v1/filter
  POST /v1/predicates
  GET  /v1/health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = g.cfg.Server.Addr
			}
			if !g.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.Printf("Listening on %s\n", addr)
			return server.Serve(ctx, addr, version)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
