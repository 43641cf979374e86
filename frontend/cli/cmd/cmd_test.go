package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kvisle/taskbridge/backend/task"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
)

// fakeAPIClient answers with canned data and records what it was asked.
type fakeAPIClient struct {
	HealthResult apiclient.Health
	Tasks        []task.Task
	Created      task.Task
	Updated      task.Task
	Reply        string
	StatsResult  task.Stats
	Err          error

	Calls      []string
	LastStatus string
	LastName   string
	LastUpdate task.Update
	LastText   string
}

var _ Client = (*fakeAPIClient)(nil)

func (f *fakeAPIClient) Health(_ context.Context) (apiclient.Health, error) {
	f.Calls = append(f.Calls, "health")
	return f.HealthResult, f.Err
}

func (f *fakeAPIClient) ListTasks(_ context.Context, status string) ([]task.Task, error) {
	f.Calls = append(f.Calls, "listTasks")
	f.LastStatus = status
	return f.Tasks, f.Err
}

func (f *fakeAPIClient) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	f.Calls = append(f.Calls, "createTask")
	f.LastName = t.Name
	if f.Err != nil {
		return task.Task{}, f.Err
	}
	if f.Created.Name != "" {
		return f.Created, nil
	}
	return t, nil
}

func (f *fakeAPIClient) UpdateTask(_ context.Context, name string, update task.Update) (task.Task, error) {
	f.Calls = append(f.Calls, "updateTask")
	f.LastName = name
	f.LastUpdate = update
	return f.Updated, f.Err
}

func (f *fakeAPIClient) DeleteTask(_ context.Context, name string) error {
	f.Calls = append(f.Calls, "deleteTask")
	f.LastName = name
	return f.Err
}

func (f *fakeAPIClient) SendMessage(_ context.Context, text, sessionID string) (string, error) {
	f.Calls = append(f.Calls, "sendMessage")
	f.LastText = text
	return f.Reply, f.Err
}

func (f *fakeAPIClient) Stats(_ context.Context) (task.Stats, error) {
	f.Calls = append(f.Calls, "stats")
	return f.StatsResult, f.Err
}

// mockRenderer captures what a command asked to display.
type mockRenderer struct {
	Rendered any
	Options  RenderOptions
}

func (m *mockRenderer) Render(resource any, options *RenderOptions) error {
	m.Rendered = resource
	m.Options = *options
	return nil
}

type TestScenario struct {
	Name     string
	Command  []string
	Stdin    string
	Client   *fakeAPIClient
	Expected TestExpectation
}

type TestExpectation struct {
	// Error is a substring the returned error must contain.
	Error string

	// Rendered is compared against what reached the renderer.
	Rendered any

	// Stdout is a substring the command output must contain.
	Stdout string

	// Calls is the exact sequence of API operations performed.
	Calls []string
}

func RunTests(t *testing.T, scenarios []TestScenario) {
	t.Helper()

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			client := scenario.Client
			if client == nil {
				client = &fakeAPIClient{}
			}
			renderer := &mockRenderer{}

			ctx := context.Background()
			ctx = context.WithValue(ctx, ContextKeyAPIClient, Client(client))
			ctx = context.WithValue(ctx, ContextKeyRenderer, Renderer(renderer))
			ctx = context.WithValue(ctx, ContextKeyDisableFileLogs, true)

			testCmd := NewRootCmd()
			testCmd.SetArgs(scenario.Command)

			if scenario.Stdin != "" {
				testCmd.SetIn(strings.NewReader(scenario.Stdin))
			}

			var stdout bytes.Buffer
			testCmd.SetOut(&stdout)
			testCmd.SetErr(&stdout)

			err := testCmd.ExecuteContext(ctx)

			if scenario.Expected.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got none", scenario.Expected.Error)
				}
				if !strings.Contains(err.Error(), scenario.Expected.Error) {
					t.Fatalf("expected error containing %q, got %q", scenario.Expected.Error, err.Error())
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if scenario.Expected.Rendered != nil {
				if diff := cmp.Diff(scenario.Expected.Rendered, renderer.Rendered); diff != "" {
					t.Errorf("unexpected rendered object (-want +got):\n%s", diff)
				}
			}

			if scenario.Expected.Stdout != "" && !strings.Contains(stdout.String(), scenario.Expected.Stdout) {
				t.Errorf("expected stdout to contain %q, got:\n%s", scenario.Expected.Stdout, stdout.String())
			}

			if scenario.Expected.Calls != nil {
				if diff := cmp.Diff(scenario.Expected.Calls, client.Calls); diff != "" {
					t.Errorf("unexpected API calls (-want +got):\n%s", diff)
				}
			}
		})
	}
}
