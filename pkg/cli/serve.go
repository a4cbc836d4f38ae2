package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"techlens/pkg/cli/config"
	controller "techlens/pkg/controller/http"
	"techlens/pkg/domain/interfaces"
	"techlens/pkg/infra/firestore"
	"techlens/pkg/infra/gcs"
	"techlens/pkg/infra/groq"
	"techlens/pkg/infra/memory"
	slacknotify "techlens/pkg/infra/slack"
	"techlens/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		groqCfg      config.Groq
		firestoreCfg config.Firestore
		storageCfg   config.Storage
		sentryCfg    config.Sentry
		slackCfg     config.Slack
		configPath   string
	)

	flags := append(serverCfg.Flags(), groqCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Usage:       "Path to a TOML overrides file",
		Destination: &configPath,
		Sources:     cli.EnvVars("TECHLENS_CONFIG"),
	})

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			fileCfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}

			if sentryCfg.Enabled() {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:         sentryCfg.DSN,
					Environment: sentryCfg.Env,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize Sentry")
				}
				defer sentry.Flush(2 * time.Second)
			}

			analyzerUC, err := buildAnalyzer(ctx, &groqCfg, &firestoreCfg, &storageCfg, &slackCfg, fileCfg)
			if err != nil {
				return err
			}

			serverOpts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithAuthSecret(serverCfg.AuthSecret),
				controller.WithMaxUploadSize(fileCfg.MaxUploadSize()),
			}
			if sentryCfg.Enabled() {
				serverOpts = append(serverOpts, controller.WithSentry())
			}

			server, err := controller.NewServer(ctx, analyzerUC, serverOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildAnalyzer wires the LLM client, repository and optional infrastructure
// into the analyzer use case
func buildAnalyzer(
	ctx context.Context,
	groqCfg *config.Groq,
	firestoreCfg *config.Firestore,
	storageCfg *config.Storage,
	slackCfg *config.Slack,
	fileCfg *config.File,
) (interfaces.AnalyzerUseCase, error) {
	logger := ctxlog.From(ctx)

	llmClient, err := groq.New(groqCfg.APIKey, groqCfg.BaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model API client")
	}

	var repo interfaces.AnalysisRepository
	if firestoreCfg.Enabled() {
		repo, err = firestore.NewRepository(ctx, firestoreCfg.ProjectID, firestoreCfg.Collection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Firestore repository")
		}
		logger.Info("Using Firestore persistence",
			slog.String("project_id", firestoreCfg.ProjectID),
			slog.String("collection", firestoreCfg.Collection),
		)
	} else {
		repo = memory.NewRepository()
		logger.Info("Using in-memory persistence")
	}

	visionModel := groqCfg.VisionModel
	if visionModel == "" {
		visionModel = fileCfg.Groq.VisionModel
	}
	textModel := groqCfg.TextModel
	if textModel == "" {
		textModel = fileCfg.Groq.TextModel
	}

	opts := []usecase.Option{
		usecase.WithVisionModel(visionModel),
		usecase.WithTextModel(textModel),
		usecase.WithMaxTokens(fileCfg.Groq.MaxTokens),
	}

	if storageCfg.Enabled() {
		archiver, err := gcs.NewArchiver(ctx, storageCfg.Bucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create upload archiver")
		}
		opts = append(opts, usecase.WithArchiver(archiver))
		logger.Info("Upload archiving enabled", slog.String("bucket", storageCfg.Bucket))
	}

	if slackCfg.Enabled() {
		opts = append(opts, usecase.WithNotifier(slacknotify.NewNotifier(slackCfg.WebhookURL)))
		logger.Info("Slack failure notification enabled")
	}

	return usecase.NewAnalyzer(llmClient, repo, opts...)
}
