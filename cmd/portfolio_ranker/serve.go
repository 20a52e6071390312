package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ranker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feed server",
	Long:  `Start an HTTP server that serves role-ranked feeds as JSON or HTML fragments, plus /roles, /health and /metrics.`,
	RunE:  runServe,
}

var (
	servePort     int
	serveTemplate string
	serveOrigins  []string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveTemplate, "template", "", "HTML template overriding the embedded one")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allowed-origin", nil, "CORS origin allowed to fetch feeds (repeatable; default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	library, err := loadLibrary(ctx)
	if err != nil {
		return err
	}

	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(library, server.Config{
		Port:           port,
		RateLimit:      cfg.Server.RateLimit,
		Threshold:      cfg.Threshold,
		TechThreshold:  cfg.TechThreshold,
		Weights:        cfg.MatchingWeights(),
		TemplatePath:   serveTemplate,
		AllowedOrigins: serveOrigins,
	}, zlog)

	return srv.Start(ctx)
}
