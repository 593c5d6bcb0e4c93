package main

import (
	"fmt"
	"os"

	"github.com/jonathan/career-matcher/internal/config"
	"github.com/jonathan/career-matcher/internal/db"
	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/jonathan/career-matcher/internal/server"
	"github.com/jonathan/career-matcher/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server exposing POST /analyze, POST /analyze/batch, GET /catalog and,
when DATABASE_URL is set, the analysis history under GET and DELETE /analyses.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			return runServe(cmd, a)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	catalog, err := a.catalog("")
	if err != nil {
		return err
	}
	matcher := matching.NewAsyncMatcher(a.matcher(catalog), matching.WithLatency(a.cfg.Latency()))

	cfg := server.Config{
		Port:         a.cfg.Port,
		Matcher:      matcher,
		Logger:       a.log,
		RateLimit:    ratelimit.LoadConfig(os.LookupEnv),
		CacheSize:    a.cfg.CacheSize,
		MaxBodyBytes: a.cfg.MaxBodyBytes,
		MaxBatchJobs: a.cfg.MaxBatchJobs,
	}

	if a.cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		cfg.Store = database
	} else {
		a.log.Warn("DATABASE_URL not set, analysis history disabled")
	}

	a.log.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.Int("catalog_terms", catalog.Len()),
		zap.Duration("simulated_latency", matcher.Latency()),
		zap.Bool("history", cfg.Store != nil),
	)

	if err := server.New(cfg).Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
