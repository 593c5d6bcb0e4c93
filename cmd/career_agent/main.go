// Package main provides the career_agent CLI: the analysis HTTP server and
// offline commands for scoring resumes against job descriptions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonathan/career-matcher/internal/config"
	"github.com/jonathan/career-matcher/internal/logging"
	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by all subcommands once the root has resolved configuration.
type app struct {
	configPath string
	logJSON    bool
	debug      bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "career_agent",
		Short: "Resume to job description ATS match scoring",
		Long: "career_agent scores how well a resume matches a job description using a keyword catalog, " +
			"quantified impact signals and resume length, either over HTTP or from the command line.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to JSON config file")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Write logs as JSON")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newCatalogCmd(a),
		newValidateCmd(a),
	)
	return root
}

// setup resolves configuration in order: defaults, config file, environment, flags.
func (a *app) setup() error {
	cfg := config.Defaults()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if a.logJSON {
		cfg.LogJSON = true
	}
	if a.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{JSON: cfg.LogJSON, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = logger
	return nil
}

// catalog loads the catalog named by override, falling back to the configured
// path and then to the built-in list.
func (a *app) catalog(override string) (*matching.Catalog, error) {
	path := override
	if path == "" {
		path = a.cfg.CatalogPath
	}
	if path == "" {
		return matching.DefaultCatalog(), nil
	}

	catalog, err := matching.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("catalog loaded", zap.String("path", path), zap.Int("terms", catalog.Len()))
	return catalog, nil
}

// matcher builds a matcher over catalog using the configured recommendation triggers.
func (a *app) matcher(catalog *matching.Catalog) *matching.Matcher {
	advisor := matching.NewAdvisor(a.cfg.CourseKeywords)
	return matching.NewMatcher(catalog, matching.WithAdvisor(advisor))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
