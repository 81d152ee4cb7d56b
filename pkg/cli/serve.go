package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/rpad300/godmode-sub015/pkg/cli/config"
	httpctrl "github.com/rpad300/godmode-sub015/pkg/controller/http"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var maxTokens int
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GODMODE_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "max-tokens",
			Usage:       "Token budget for analysis prompts",
			Value:       0,
			Sources:     cli.EnvVars("GODMODE_MAX_TOKENS"),
			Destination: &maxTokens,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			profileCfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load profile configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				analysisSvc, err := analysis.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize analysis service")
				}
				ucOpts = append(ucOpts, usecase.WithAnalysisService(analysisSvc))
				logging.Default().Info("Gemini analysis service enabled")
			} else {
				logging.Default().Info("Gemini not configured, analysis features will be limited")
			}

			notifySvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack notifications")
			}
			if notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotifyService(notifySvc))
				logging.Default().Info("Slack notifications enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			httpOpts := []httpctrl.Options{
				httpctrl.WithProfileConfig(profileCfg),
			}
			if maxTokens > 0 {
				httpOpts = append(httpOpts, httpctrl.WithMaxTokens(maxTokens))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
