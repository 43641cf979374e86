// Package fail turns low-level failures into actionable messages for CLI
// users.
package fail

import (
	"fmt"
	"strings"

	"github.com/kvisle/taskbridge/frontend/cli/pkg/terminal"
)

type UserError struct {
	Cause       error
	UserMessage string
	Solutions   []string
	TechDetails string
}

func (e *UserError) Error() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s %s\n\n", terminal.ErrorSymbol, terminal.Bold(e.UserMessage)))

	if len(e.Solutions) > 0 {
		msg.WriteString(fmt.Sprintf("%s Try these solutions:\n", terminal.InfoSymbol))
		for i, solution := range e.Solutions {
			msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, solution))
		}
		msg.WriteString("\n")
	}

	if e.TechDetails != "" {
		msg.WriteString(fmt.Sprintf("Technical details: %s\n", e.TechDetails))
	}

	return msg.String()
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewConnectionError explains a failure to reach the local API server.
func NewConnectionError(address string, err error) *UserError {
	return &UserError{
		Cause:       err,
		UserMessage: fmt.Sprintf("Could not reach the taskbridge API at %s", address),
		Solutions: []string{
			"Start the API server with 'taskbridge serve'",
			"Check that TASKBRIDGE_API_URL points at the right host and port",
			"Verify nothing else is blocking the port",
		},
		TechDetails: err.Error(),
	}
}

// NewUpstreamError explains that the API server is up but the external
// automation behind it is not answering.
func NewUpstreamError(err error) *UserError {
	return &UserError{
		Cause:       err,
		UserMessage: "The workflow automation behind the API is not responding",
		Solutions: []string{
			"Check the health endpoint: 'taskbridge health'",
			"Verify TASKBRIDGE_WEBHOOK_URL on the server points at an active workflow",
			"Confirm the automation workflow is enabled",
		},
		TechDetails: err.Error(),
	}
}
