// Package gateway adapts typed task operations to the single generic call
// shape the external workflow webhook expects, and adapts its generic JSON
// responses back into typed results. All state lives in the external,
// spreadsheet-backed store; the gateway holds nothing between calls.
package gateway

import (
	"context"

	"github.com/kvisle/taskbridge/backend/task"
)

// Client is the narrow seam between the API layer and the external store:
// one method per webhook action. The API layer never constructs webhook
// payloads itself, so a canned test double can stand in for the webhook
// without touching any handler.
type Client interface {
	// ListTasks returns all tasks, optionally filtered by status. The
	// filter is forwarded to the webhook; no filtering happens locally.
	ListTasks(ctx context.Context, status task.Status) ([]task.Task, error)

	// CreateTask creates a task in the external store and returns the
	// created task as the store reports it.
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)

	// UpdateTask applies the non-nil fields of the update to the named
	// task. Returns ErrNotFound if the store does not know the name.
	UpdateTask(ctx context.Context, name string, update task.Update) (task.Task, error)

	// DeleteTask removes the named task. Returns ErrNotFound if the
	// store does not know the name.
	DeleteTask(ctx context.Context, name string) error

	// SendMessage forwards a natural-language instruction to the
	// automation and returns its reply text. The session id groups
	// related messages; when empty the gateway's own session is used.
	SendMessage(ctx context.Context, text, sessionID string) (string, error)

	// GetStats returns the per-status aggregate the store reports.
	GetStats(ctx context.Context) (task.Stats, error)

	// HealthCheck probes the webhook for reachability.
	HealthCheck(ctx context.Context) error
}

// Operation tags carried in the "action" field of every outbound call.
const (
	actionListTasks   = "listTasks"
	actionCreateTask  = "createTask"
	actionUpdateTask  = "updateTask"
	actionDeleteTask  = "deleteTask"
	actionSendMessage = "sendMessage"
	actionGetStats    = "getStats"
	actionHealthCheck = "healthCheck"
)
