package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kvisle/taskbridge/backend/api"
	"github.com/kvisle/taskbridge/backend/gateway"
	"github.com/kvisle/taskbridge/shared/config"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	Port       int
	WebhookURL string
}

func NewServeCmd() *cobra.Command {
	options := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the taskbridge API server",
		Long: `Runs the REST API that bridges task operations to the external workflow
webhook. The webhook URL comes from TASKBRIDGE_WEBHOOK_URL (or a .env file)
unless --webhook-url is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = options.Port
			}
			if cmd.Flags().Changed("webhook-url") {
				cfg.WebhookURL = options.WebhookURL
			}
			if err := cfg.ValidateForServe(); err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			webhook := gateway.NewWebhook(cfg.WebhookURL,
				gateway.WithTimeout(cfg.WebhookTimeout),
				gateway.WithMetrics(gateway.NewMetrics(registry)),
			)

			// Probe the webhook once at startup so a misconfigured URL
			// shows up in the logs immediately. The server starts
			// either way; /health keeps reporting the live state.
			if err := webhook.HealthCheck(cmd.Context()); err != nil {
				slog.Warn("webhook not reachable at startup", "error", err)
			} else {
				slog.Info("webhook connection successful")
			}

			server := api.NewServer(api.ServerOptions{
				Gateway:  webhook,
				Port:     cfg.Port,
				Version:  Version,
				Registry: registry,
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()

			slog.Info("taskbridge API listening", "port", cfg.Port, "webhook_timeout", cfg.WebhookTimeout.String())

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				slog.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().IntVar(&options.Port, "port", config.DefaultPort, "local port to listen on")
	cmd.Flags().StringVar(&options.WebhookURL, "webhook-url", "", "external automation webhook URL")

	return cmd
}
