package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/CloudCorpRecords/RedTeamGemini/config"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/analyzer"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/api"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/fetcher"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/genai"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/notify"
)

// serveCmd is the cobra command that starts the analysis API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the red-team analysis api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Debug = k.Bool("debug")
	cfg.Pretty = k.Bool("pretty")

	client, err := genai.New(cfg.GeminiAPIKey,
		genai.WithHTTPClient(&http.Client{Timeout: cfg.GenerateTimeout}),
	)
	if err != nil {
		return fmt.Errorf("initializing gemini client: %w", err)
	}

	pageFetcher := fetcher.New(
		fetcher.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
	)

	a := analyzer.New(client, pageFetcher,
		analyzer.WithFindingsModel(cfg.FindingsModel),
		analyzer.WithAssessmentModel(cfg.AssessmentModel),
	)

	handler := api.NewRouter(api.RouterConfig{
		Analyzer:    a,
		Notifier:    setupNotifier(cfg),
		MaxBodySize: cfg.MaxBodySize,
	})

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Listen).Str("model", cfg.FindingsModel).Msg("starting redteam-gemini service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupNotifier initializes the Slack notifier from config, returning nil
// when unconfigured. api.Notifier is an interface, so a typed nil from
// notify.New must not leak through.
func setupNotifier(cfg *config.Config) api.Notifier {
	if cfg.SlackWebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := notify.New(cfg.SlackWebhookURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack notifier")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
