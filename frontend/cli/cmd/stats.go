package cmd

import (
	"github.com/spf13/cobra"
)

type statsOptions struct {
	RenderOptions RenderOptions
}

func NewStatsCmd() *cobra.Command {
	options := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getAPIClient(cmd.Context())
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(ConvertStatsToDisplay(stats), &options.RenderOptions)
		},
	}

	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
