package cmd

import (
	"errors"
	"testing"

	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
)

func TestHealthCmd(t *testing.T) {
	scenarios := []TestScenario{
		{
			Name:    "reports a healthy API",
			Command: []string{"health"},
			Client: &fakeAPIClient{
				HealthResult: apiclient.Health{
					Status:   "healthy",
					Version:  "1.0.0",
					Services: map[string]string{"webhook": "connected"},
				},
			},
			Expected: TestExpectation{
				Rendered: &HealthDisplay{
					Status:   "healthy",
					Version:  "1.0.0",
					Services: map[string]string{"webhook": "connected"},
				},
				Calls: []string{"health"},
			},
		},
		{
			Name:    "reports a degraded API",
			Command: []string{"health"},
			Client: &fakeAPIClient{
				HealthResult: apiclient.Health{
					Status:   "degraded",
					Version:  "1.0.0",
					Services: map[string]string{"webhook": "disconnected"},
				},
			},
			Expected: TestExpectation{
				Rendered: &HealthDisplay{
					Status:   "degraded",
					Version:  "1.0.0",
					Services: map[string]string{"webhook": "disconnected"},
				},
			},
		},
		{
			Name:    "wraps connection failures with guidance",
			Command: []string{"health"},
			Client:  &fakeAPIClient{Err: errors.New("dial tcp: connection refused")},
			Expected: TestExpectation{
				Error: "Could not reach the taskbridge API",
			},
		},
	}

	RunTests(t, scenarios)
}
