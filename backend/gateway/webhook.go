package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/kvisle/taskbridge/backend/task"
)

// DefaultTimeout bounds a single outbound webhook call. Override with
// WithTimeout when the workflow is known to be slower.
const DefaultTimeout = 30 * time.Second

// healthTimeout keeps the reachability probe snappier than data calls.
const healthTimeout = 10 * time.Second

var _ Client = (*Webhook)(nil)

// Webhook talks to the external workflow automation. Every operation is a
// single fire-once HTTP POST carrying {action, sessionId, ...fields}; there
// are no retries, no backoff and no idempotency keys.
type Webhook struct {
	url       string
	sessionID string
	client    *http.Client
	metrics   *Metrics
}

type WebhookOption func(*Webhook)

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) WebhookOption {
	return func(w *Webhook) {
		w.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *Webhook) {
		w.client = client
	}
}

// WithSessionID fixes the session id sent with structured operations.
func WithSessionID(sessionID string) WebhookOption {
	return func(w *Webhook) {
		w.sessionID = sessionID
	}
}

// WithMetrics wires call counters and latency histograms.
func WithMetrics(metrics *Metrics) WebhookOption {
	return func(w *Webhook) {
		w.metrics = metrics
	}
}

func NewWebhook(url string, opts ...WebhookOption) *Webhook {
	webhook := &Webhook{
		url:       url,
		sessionID: "api-" + uuid.NewString(),
		client:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(webhook)
	}

	return webhook
}

func (w *Webhook) ListTasks(ctx context.Context, status task.Status) (tasks []task.Task, err error) {
	defer w.timeCall(actionListTasks, time.Now(), &err)

	instruction := "Show me all tasks"
	fields := map[string]any{}
	if status != "" {
		instruction = fmt.Sprintf("Show me all tasks with status %s", status)
		fields["status_filter"] = string(status)
	}
	fields["message"] = instruction

	reply, err := w.call(ctx, actionListTasks, fields)
	if err != nil {
		return nil, err
	}

	return decodeTaskList(reply)
}

func (w *Webhook) CreateTask(ctx context.Context, t task.Task) (created task.Task, err error) {
	defer w.timeCall(actionCreateTask, time.Now(), &err)

	instruction := fmt.Sprintf("Create a new task called '%s'", t.Name)
	if t.Status != "" {
		instruction += fmt.Sprintf(" with status '%s'", t.Status)
	}
	if t.Description != "" {
		instruction += fmt.Sprintf(" and description '%s'", t.Description)
	}
	if t.Deadline != "" {
		instruction += fmt.Sprintf(" with deadline '%s'", t.Deadline)
	}

	fields := map[string]any{
		"message":   instruction,
		"task_name": t.Name,
	}
	if t.Status != "" {
		fields["status"] = string(t.Status)
	}
	if t.Description != "" {
		fields["description"] = t.Description
	}
	if t.Deadline != "" {
		fields["deadline"] = t.Deadline
	}

	reply, err := w.call(ctx, actionCreateTask, fields)
	if err != nil {
		return task.Task{}, err
	}
	if message, rejected := replyReportsFailure(reply); rejected {
		return task.Task{}, upstreamError("webhook rejected create: %s", message)
	}

	// The automation does not always echo the stored row; fall back to
	// the request fields, which the store is expected to preserve.
	if reply.Get("task").Exists() {
		return decodeTask(reply.Get("task")), nil
	}
	return t, nil
}

func (w *Webhook) UpdateTask(ctx context.Context, name string, update task.Update) (updated task.Task, err error) {
	defer w.timeCall(actionUpdateTask, time.Now(), &err)

	var changes []string
	fields := map[string]any{"task_name": name}
	if update.Status != nil {
		changes = append(changes, fmt.Sprintf("status to '%s'", *update.Status))
		fields["status"] = string(*update.Status)
	}
	if update.Description != nil {
		changes = append(changes, fmt.Sprintf("description to '%s'", *update.Description))
		fields["description"] = *update.Description
	}
	if update.Deadline != nil {
		changes = append(changes, fmt.Sprintf("deadline to '%s'", *update.Deadline))
		fields["deadline"] = *update.Deadline
	}
	fields["message"] = fmt.Sprintf("Update the task '%s' - change %s", name, strings.Join(changes, ", "))

	reply, err := w.call(ctx, actionUpdateTask, fields)
	if err != nil {
		return task.Task{}, err
	}
	if replyReportsNotFound(reply) {
		return task.Task{}, notFoundError(name)
	}
	if message, rejected := replyReportsFailure(reply); rejected {
		return task.Task{}, upstreamError("webhook rejected update: %s", message)
	}

	if reply.Get("task").Exists() {
		return decodeTask(reply.Get("task")), nil
	}
	return update.Apply(task.Task{Name: name}), nil
}

func (w *Webhook) DeleteTask(ctx context.Context, name string) (err error) {
	defer w.timeCall(actionDeleteTask, time.Now(), &err)

	reply, err := w.call(ctx, actionDeleteTask, map[string]any{
		"task_name": name,
		"message":   fmt.Sprintf("Delete the task '%s' - yes, I'm sure", name),
	})
	if err != nil {
		return err
	}
	if replyReportsNotFound(reply) {
		return notFoundError(name)
	}
	if message, rejected := replyReportsFailure(reply); rejected {
		return upstreamError("webhook rejected delete: %s", message)
	}

	return nil
}

func (w *Webhook) SendMessage(ctx context.Context, text, sessionID string) (response string, err error) {
	defer w.timeCall(actionSendMessage, time.Now(), &err)

	fields := map[string]any{"message": text}
	if sessionID != "" {
		fields["sessionId"] = sessionID
	}

	reply, err := w.call(ctx, actionSendMessage, fields)
	if err != nil {
		return "", err
	}

	return decodeReplyText(reply), nil
}

func (w *Webhook) GetStats(ctx context.Context) (stats task.Stats, err error) {
	defer w.timeCall(actionGetStats, time.Now(), &err)

	reply, err := w.call(ctx, actionGetStats, map[string]any{
		"message": "Show me all tasks",
	})
	if err != nil {
		return task.Stats{}, err
	}

	return decodeStats(reply)
}

func (w *Webhook) HealthCheck(ctx context.Context) (err error) {
	defer w.timeCall(actionHealthCheck, time.Now(), &err)

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	_, err = w.call(ctx, actionHealthCheck, map[string]any{
		"message": "health check",
	})
	return err
}

// call performs the one outbound POST every operation shares and returns
// the parsed response body.
func (w *Webhook) call(ctx context.Context, action string, fields map[string]any) (gjson.Result, error) {
	payload := map[string]any{
		"action":    action,
		"sessionId": w.sessionID,
	}
	for key, value := range fields {
		payload[key] = value
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling webhook", "action", action, "url", w.url)

	resp, err := w.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			slog.Warn("webhook call timed out", "action", action)
			return gjson.Result{}, upstreamError("timeout calling %s", w.url)
		}
		slog.Warn("webhook unreachable", "action", action, "error", err)
		return gjson.Result{}, upstreamError("calling %s: %v", w.url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("failed to read webhook response", "action", action, "error", err)
		return gjson.Result{}, upstreamError("reading response from %s: %v", w.url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("webhook returned error status", "action", action, "status", resp.StatusCode)
		return gjson.Result{}, upstreamError("webhook returned status %d", resp.StatusCode)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		// Some workflows acknowledge with an empty 200.
		return gjson.Result{}, nil
	}

	if !gjson.ValidBytes(raw) {
		slog.Error("webhook response could not be parsed", "action", action, "body_length", len(raw))
		return gjson.Result{}, malformedError("response is not valid JSON")
	}

	return gjson.ParseBytes(raw), nil
}

func (w *Webhook) timeCall(action string, start time.Time, err *error) {
	w.metrics.observe(action, *err, time.Since(start))
}

func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}

// replyReportsNotFound inspects the automation's free-form reply for a
// missing-task signal. The webhook answers 200 even when the named task
// does not exist, so absence is only visible in the body.
func replyReportsNotFound(reply gjson.Result) bool {
	for _, path := range []string{"error", "output", "message"} {
		value := reply.Get(path)
		if value.Type != gjson.String {
			continue
		}
		text := strings.ToLower(value.String())
		if strings.Contains(text, "not found") || strings.Contains(text, "no task") || strings.Contains(text, "does not exist") {
			return true
		}
	}
	return false
}

// replyReportsFailure reports an explicit success=false acknowledgement.
func replyReportsFailure(reply gjson.Result) (string, bool) {
	success := reply.Get("success")
	if !success.Exists() || success.Bool() {
		return "", false
	}

	for _, path := range []string{"error", "message", "output"} {
		if value := reply.Get(path); value.Type == gjson.String {
			return value.String(), true
		}
	}
	return "unspecified failure", true
}

func decodeTaskList(reply gjson.Result) ([]task.Task, error) {
	tasksField := reply.Get("tasks")
	if !tasksField.Exists() || !tasksField.IsArray() {
		slog.Error("webhook response is missing the tasks array")
		return nil, malformedError("response has no tasks array")
	}

	var tasks []task.Task
	tasksField.ForEach(func(_, value gjson.Result) bool {
		tasks = append(tasks, decodeTask(value))
		return true
	})
	return tasks, nil
}

func decodeTask(value gjson.Result) task.Task {
	name := value.Get("task_name").String()
	if name == "" {
		name = value.Get("name").String()
	}

	status := task.Status(value.Get("status").String())
	if parsed, err := task.ParseStatus(string(status)); err == nil {
		status = parsed
	}

	return task.Task{
		Name:        name,
		Status:      status,
		Description: value.Get("description").String(),
		Deadline:    value.Get("deadline").String(),
	}
}

func decodeReplyText(reply gjson.Result) string {
	for _, path := range []string{"output", "response", "message", "text"} {
		if value := reply.Get(path); value.Type == gjson.String && value.String() != "" {
			return value.String()
		}
	}
	if reply.Type == gjson.String {
		return reply.String()
	}
	return reply.Raw
}

func decodeStats(reply gjson.Result) (task.Stats, error) {
	if byStatus := reply.Get("by_status"); byStatus.Exists() {
		stats := task.Stats{
			Total:          int(reply.Get("total_tasks").Int()),
			ByStatus:       make(map[task.Status]int),
			CompletionRate: reply.Get("completion_rate").Float(),
		}
		byStatus.ForEach(func(key, value gjson.Result) bool {
			stats.ByStatus[task.Status(key.String())] = int(value.Int())
			return true
		})
		return stats, nil
	}

	// Older workflow revisions only return the raw task list; derive the
	// aggregate from it.
	if reply.Get("tasks").Exists() {
		tasks, err := decodeTaskList(reply)
		if err != nil {
			return task.Stats{}, err
		}
		return task.StatsFromTasks(tasks), nil
	}

	slog.Error("webhook stats response has neither by_status nor tasks")
	return task.Stats{}, malformedError("response has no stats payload")
}
