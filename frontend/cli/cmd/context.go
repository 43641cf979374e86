package cmd

import (
	"context"
	"os"

	"github.com/kvisle/taskbridge/backend/task"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
	"github.com/kvisle/taskbridge/shared/config"
)

type contextKey string

const (
	ContextKeyAPIClient       contextKey = "api-client"
	ContextKeyAPIURL          contextKey = "api-url"
	ContextKeyRenderer        contextKey = "renderer"
	ContextKeyDisableFileLogs contextKey = "disable-file-logs"
)

// Client is the slice of the REST API the commands use. *apiclient.Client
// implements it; tests substitute a canned fake.
type Client interface {
	Health(ctx context.Context) (apiclient.Health, error)
	ListTasks(ctx context.Context, status string) ([]task.Task, error)
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, name string, update task.Update) (task.Task, error)
	DeleteTask(ctx context.Context, name string) error
	SendMessage(ctx context.Context, text, sessionID string) (string, error)
	Stats(ctx context.Context) (task.Stats, error)
}

var _ Client = (*apiclient.Client)(nil)

func getAPIClient(ctx context.Context) Client {
	if client, ok := ctx.Value(ContextKeyAPIClient).(Client); ok {
		return client
	}
	return apiclient.New(getAPIURL(ctx))
}

func getAPIURL(ctx context.Context) string {
	if url, ok := ctx.Value(ContextKeyAPIURL).(string); ok && url != "" {
		return url
	}
	return config.DefaultAPIURL
}

func getRenderer(ctx context.Context) Renderer {
	if renderer, ok := ctx.Value(ContextKeyRenderer).(Renderer); ok {
		return renderer
	}
	return NewConsoleRenderer(os.Stdout)
}
