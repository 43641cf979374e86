package cmd

import (
	"testing"

	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
)

func TestTaskDeleteCmd(t *testing.T) {
	scenarios := []TestScenario{
		{
			Name:    "deletes without prompting when forced",
			Command: []string{"task", "delete", "Buy groceries", "--force"},
			Client:  &fakeAPIClient{},
			Expected: TestExpectation{
				Stdout: `Task "Buy groceries" deleted`,
				Calls:  []string{"deleteTask"},
			},
		},
		{
			Name:    "deletes after confirmation",
			Command: []string{"task", "delete", "Buy groceries"},
			Stdin:   "y\n",
			Client:  &fakeAPIClient{},
			Expected: TestExpectation{
				Stdout: `Task "Buy groceries" deleted`,
				Calls:  []string{"deleteTask"},
			},
		},
		{
			Name:    "aborts when the user declines",
			Command: []string{"task", "delete", "Buy groceries"},
			Stdin:   "n\n",
			Client:  &fakeAPIClient{},
			Expected: TestExpectation{
				Stdout: "Aborted.",
			},
		},
		{
			Name:    "surfaces a missing task",
			Command: []string{"task", "delete", "Ghost", "-f"},
			Client: &fakeAPIClient{
				Err: &apiclient.APIError{StatusCode: 404, Message: "Task 'Ghost' not found"},
			},
			Expected: TestExpectation{
				Error: "not found",
			},
		},
	}

	RunTests(t, scenarios)
}

func TestTaskDeleteCmdDeclinedMakesNoCall(t *testing.T) {
	client := &fakeAPIClient{}

	RunTests(t, []TestScenario{
		{
			Name:    "declining leaves the task alone",
			Command: []string{"task", "delete", "Buy groceries"},
			Stdin:   "n\n",
			Client:  client,
		},
	})

	if len(client.Calls) != 0 {
		t.Errorf("expected no API calls, got %v", client.Calls)
	}
}
