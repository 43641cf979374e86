package cmd

import (
	"testing"

	"github.com/kvisle/taskbridge/backend/task"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
)

func TestStatsCmd(t *testing.T) {
	scenarios := []TestScenario{
		{
			Name:    "shows task statistics",
			Command: []string{"stats"},
			Client: &fakeAPIClient{
				StatsResult: task.Stats{
					Total: 4,
					ByStatus: map[task.Status]int{
						task.StatusTodo:       2,
						task.StatusInProgress: 1,
						task.StatusDone:       1,
					},
					CompletionRate: 25,
				},
			},
			Expected: TestExpectation{
				Rendered: &StatsDisplay{
					Total: 4,
					ByStatus: map[string]int{
						string(task.StatusTodo):       2,
						string(task.StatusInProgress): 1,
						string(task.StatusDone):       1,
					},
					CompletionRate: 25,
				},
				Calls: []string{"stats"},
			},
		},
		{
			Name:    "reports upstream failures",
			Command: []string{"stats"},
			Client:  &fakeAPIClient{Err: &apiclient.APIError{StatusCode: 502, Message: "workflow automation unreachable"}},
			Expected: TestExpectation{
				Error: "workflow automation",
			},
		},
	}

	RunTests(t, scenarios)
}
