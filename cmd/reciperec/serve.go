package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DakshC17/reciperecommendation/internal/config"
	"github.com/DakshC17/reciperecommendation/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recipe recommendation server",
	Long: `Start the HTTP server (and any configured chat bots).

Requires GROQ_API_KEY or OPENAI_API_KEY, from the environment or from
~/.reciperec/config.env.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
