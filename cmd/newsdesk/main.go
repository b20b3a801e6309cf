package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsdesk/internal/config"
	"newsdesk/internal/fetcher"
	"newsdesk/internal/hackernews"
	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
	"newsdesk/internal/newsapi"
	"newsdesk/internal/server"
	"newsdesk/internal/trivia"
	"newsdesk/internal/worker"

	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsdesk",
		Short:         "Quiz, Hacker News and headlines web apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (.json, .yaml)")
	root.PersistentFlags().StringVar(&addr, "addr", "", "listen address, overrides config")

	root.AddCommand(
		&cobra.Command{
			Use:   "quiz",
			Short: "Serve the Open Trivia quiz",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), (*config.Config).Validate, func(cfg *config.Config, hc *http.Client, m *metrics.Metrics) *server.Server {
					client := trivia.NewClient(trivia.DefaultBaseURL, fetcher.New(trivia.UpstreamName, hc, m))
					return server.NewQuizServer(client, serverOptions(cfg, m)...)
				})
			},
		},
		&cobra.Command{
			Use:   "stories",
			Short: "Serve Hacker News stories and jobs",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), (*config.Config).Validate, func(cfg *config.Config, hc *http.Client, m *metrics.Metrics) *server.Server {
					client := hackernews.NewClient(
						hackernews.DefaultBaseURL,
						fetcher.New(hackernews.UpstreamName, hc, m),
						worker.NewPool(cfg.Upstream.Concurrency),
					)
					return server.NewStoriesServer(client, serverOptions(cfg, m)...)
				})
			},
		},
		&cobra.Command{
			Use:   "headlines",
			Short: "Serve NewsAPI top headlines",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), (*config.Config).ValidateHeadlines, func(cfg *config.Config, hc *http.Client, m *metrics.Metrics) *server.Server {
					client := newsapi.NewClient(
						newsapi.DefaultBaseURL,
						cfg.NewsAPI.APIKey,
						cfg.NewsAPI.Country,
						fetcher.New(newsapi.UpstreamName, hc, m),
					)
					return server.NewHeadlinesServer(client, serverOptions(cfg, m)...)
				})
			},
		},
	)
	return root
}

type buildFunc func(cfg *config.Config, hc *http.Client, m *metrics.Metrics) *server.Server

func serve(ctx context.Context, validate func(*config.Config) error, build buildFunc) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Log.Errorf("Config load error: %v", err)
		return err
	}
	cfg.ApplyEnv()
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if err := validate(cfg); err != nil {
		logger.Log.Errorf("Invalid config: %v", err)
		return err
	}

	logger.Init(cfg.Log.Level)
	defer logger.Log.Info("Application stopped")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	hc := &http.Client{Timeout: cfg.UpstreamTimeout()}
	srv := build(cfg, hc, m)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.HTTP.Addr, srv.Handler(), cfg.ShutdownTimeout()); err != nil {
		logger.Log.Errorf("Server error: %v", err)
		return err
	}
	return nil
}

func serverOptions(cfg *config.Config, m *metrics.Metrics) []server.Option {
	if m == nil {
		return nil
	}
	return []server.Option{server.WithMetrics(m, cfg.Metrics.Path)}
}
