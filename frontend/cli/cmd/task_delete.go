package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvisle/taskbridge/frontend/cli/pkg/terminal"
)

type taskDeleteOptions struct {
	Force bool
}

func NewTaskDeleteCmd() *cobra.Command {
	options := &taskDeleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete NAME",
		Short:   "Delete a task",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !options.Force {
				if !confirmDeletion(cmd.InOrStdin(), cmd.OutOrStdout(), name) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			client := getAPIClient(cmd.Context())
			if err := client.DeleteTask(cmd.Context(), name); err != nil {
				return clientError(cmd.Context(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Task %q deleted\n", terminal.SuccessSymbol, name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&options.Force, "force", "f", false, "delete without confirmation")

	return cmd
}
