package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"investor_outreach/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	orch, err := buildOrchestrator()
	if err != nil {
		return err
	}
	srv, err := server.New(orch, logger)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	logger.Info("starting web server",
		zap.String("addr", addr),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("product", cfg.Product.Name))
	return srv.ListenAndServe(cmd.Context(), addr)
}
