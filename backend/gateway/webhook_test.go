package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kvisle/taskbridge/backend/task"
)

// capturedCall records the payload the webhook received.
type capturedCall struct {
	Action    string `json:"action"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	TaskName  string `json:"task_name"`
	Status    string `json:"status"`
	Filter    string `json:"status_filter"`
}

func webhookServer(t *testing.T, status int, body string) (*Webhook, *capturedCall) {
	t.Helper()

	captured := &capturedCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewWebhook(server.URL, WithSessionID("test-session")), captured
}

func TestListTasks(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{
		"tasks": [
			{"task_name": "My First Task", "status": "TODO", "description": "Testing the API"},
			{"task_name": "Ship release", "status": "in_progress", "deadline": "2025-12-31"}
		]
	}`)

	tasks, err := webhook.ListTasks(context.Background(), "")
	require.NoError(t, err)

	expected := []task.Task{
		{Name: "My First Task", Status: task.StatusTodo, Description: "Testing the API"},
		{Name: "Ship release", Status: task.StatusInProgress, Deadline: "2025-12-31"},
	}
	if diff := cmp.Diff(expected, tasks); diff != "" {
		t.Errorf("unexpected tasks (-want +got):\n%s", diff)
	}

	require.Equal(t, "listTasks", captured.Action)
	require.Equal(t, "test-session", captured.SessionID)
	require.Equal(t, "Show me all tasks", captured.Message)
}

func TestListTasksForwardsStatusFilter(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"tasks": []}`)

	tasks, err := webhook.ListTasks(context.Background(), task.StatusDone)
	require.NoError(t, err)
	require.Empty(t, tasks)

	require.Equal(t, "DONE", captured.Filter)
	require.Equal(t, "Show me all tasks with status DONE", captured.Message)
}

func TestListTasksMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       `<html>502 Bad Gateway</html>`,
		"no tasks array": `{"output": "done"}`,
	} {
		t.Run(name, func(t *testing.T) {
			webhook, _ := webhookServer(t, http.StatusOK, body)

			_, err := webhook.ListTasks(context.Background(), "")
			require.Error(t, err)
			require.True(t, IsMalformedResponse(err), "expected malformed response error, got %v", err)
		})
	}
}

func TestCreateTaskEchoesInput(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"output": "Task created"}`)

	input := task.Task{
		Name:        "My First Task",
		Status:      task.StatusTodo,
		Description: "Testing the API",
	}
	created, err := webhook.CreateTask(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, input, created)

	require.Equal(t, "createTask", captured.Action)
	require.Equal(t, "My First Task", captured.TaskName)
	require.Equal(t, "TODO", captured.Status)
	require.Contains(t, captured.Message, "Create a new task called 'My First Task'")
}

func TestCreateTaskUsesEchoedRow(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{
		"task": {"task_name": "My First Task", "status": "TODO", "description": "stored copy"}
	}`)

	created, err := webhook.CreateTask(context.Background(), task.Task{Name: "My First Task", Status: task.StatusTodo})
	require.NoError(t, err)
	require.Equal(t, "stored copy", created.Description)
}

func TestUpdateTaskNotFound(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{"output": "Task 'ghost' was not found in the sheet"}`)

	status := task.StatusDone
	_, err := webhook.UpdateTask(context.Background(), "ghost", task.Update{Status: &status})
	require.Error(t, err)
	require.True(t, IsNotFound(err), "expected not found error, got %v", err)
}

func TestUpdateTaskEchoesChanges(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"success": true, "output": "updated"}`)

	status := task.StatusInProgress
	updated, err := webhook.UpdateTask(context.Background(), "Ship release", task.Update{Status: &status})
	require.NoError(t, err)
	require.Equal(t, task.Task{Name: "Ship release", Status: task.StatusInProgress}, updated)

	require.Equal(t, "updateTask", captured.Action)
	require.Contains(t, captured.Message, "Update the task 'Ship release' - change status to 'IN PROGRESS'")
}

func TestDeleteTask(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"success": true}`)

	require.NoError(t, webhook.DeleteTask(context.Background(), "Ship release"))
	require.Equal(t, "deleteTask", captured.Action)
	require.Equal(t, "Ship release", captured.TaskName)
}

func TestDeleteTaskNotFound(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{"error": "no task with that name exists"}`)

	err := webhook.DeleteTask(context.Background(), "ghost")
	require.True(t, IsNotFound(err), "expected not found error, got %v", err)
}

func TestSendMessage(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"output": "Here are your tasks"}`)

	reply, err := webhook.SendMessage(context.Background(), "Show me all tasks", "conversation-42")
	require.NoError(t, err)
	require.Equal(t, "Here are your tasks", reply)

	require.Equal(t, "sendMessage", captured.Action)
	require.Equal(t, "conversation-42", captured.SessionID)
}

func TestSendMessageDefaultSession(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"output": "ok"}`)

	_, err := webhook.SendMessage(context.Background(), "hello", "")
	require.NoError(t, err)
	require.Equal(t, "test-session", captured.SessionID)
}

func TestGetStatsFromAggregate(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{
		"total_tasks": 3,
		"by_status": {"TODO": 1, "IN PROGRESS": 1, "DONE": 1},
		"completion_rate": 33.33
	}`)

	stats, err := webhook.GetStats(context.Background())
	require.NoError(t, err)

	expected := task.Stats{
		Total: 3,
		ByStatus: map[task.Status]int{
			task.StatusTodo:       1,
			task.StatusInProgress: 1,
			task.StatusDone:       1,
		},
		CompletionRate: 33.33,
	}
	if diff := cmp.Diff(expected, stats); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
}

func TestGetStatsDerivedFromTaskList(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{
		"tasks": [
			{"task_name": "a", "status": "TODO"},
			{"task_name": "b", "status": "DONE"}
		]
	}`)

	stats, err := webhook.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.ByStatus[task.StatusDone])
	require.Equal(t, float64(50), stats.CompletionRate)
}

func TestHealthCheck(t *testing.T) {
	webhook, captured := webhookServer(t, http.StatusOK, `{"output": "ok"}`)

	require.NoError(t, webhook.HealthCheck(context.Background()))
	require.Equal(t, "healthCheck", captured.Action)
}

func TestHealthCheckUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable from here on

	webhook := NewWebhook(server.URL)
	err := webhook.HealthCheck(context.Background())
	require.True(t, IsUpstreamUnavailable(err), "expected upstream unavailable, got %v", err)
}

func TestCallNon2xxStatus(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusBadGateway, `{"error": "workflow crashed"}`)

	_, err := webhook.ListTasks(context.Background(), "")
	require.True(t, IsUpstreamUnavailable(err), "expected upstream unavailable, got %v", err)
	require.NotContains(t, err.Error(), "not found")
}

func TestCallTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	webhook := NewWebhook(server.URL, WithTimeout(20*time.Millisecond))
	_, err := webhook.ListTasks(context.Background(), "")
	require.True(t, IsUpstreamUnavailable(err), "expected upstream unavailable, got %v", err)
}

func TestMetricsRecordOutcomes(t *testing.T) {
	webhook, _ := webhookServer(t, http.StatusOK, `{"tasks": []}`)
	webhook.metrics = NewMetrics(nil)

	_, err := webhook.ListTasks(context.Background(), "")
	require.NoError(t, err)
	// The nil-registry metrics object must still accept observations.
	webhook.metrics.observe(actionListTasks, ErrNotFound, time.Millisecond)
}
