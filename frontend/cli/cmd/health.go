package cmd

import (
	"github.com/spf13/cobra"
)

type healthOptions struct {
	RenderOptions RenderOptions
}

func NewHealthCmd() *cobra.Command {
	options := &healthOptions{}

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the API server and its webhook connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getAPIClient(cmd.Context())
			health, err := client.Health(cmd.Context())
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(ConvertHealthToDisplay(health), &options.RenderOptions)
		},
	}

	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
