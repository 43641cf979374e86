package cmd

import (
	"context"

	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/fail"
)

// clientError upgrades transport-level failures to actionable messages.
// API-level errors (validation, not found) already carry a useful message
// and pass through unchanged.
func clientError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*apiclient.APIError); !ok {
		return fail.NewConnectionError(getAPIURL(ctx), err)
	}

	if apiclient.IsUpstreamFailure(err) {
		return fail.NewUpstreamError(err)
	}

	return err
}
