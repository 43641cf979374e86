package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kvisle/taskbridge/backend/task"
)

type taskUpdateOptions struct {
	Status        string
	Description   string
	Deadline      string
	RenderOptions RenderOptions
}

func NewTaskUpdateCmd() *cobra.Command {
	options := &taskUpdateOptions{}

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update fields of an existing task",
		Args:  cobra.ExactArgs(1),
		Example: `  # Move a task forward
  taskbridge task update "Ship release" --status done

  # Push out a deadline
  taskbridge task update "Pay invoices" --deadline 2026-01-15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			update := task.Update{}
			if cmd.Flags().Changed("status") {
				status, err := task.ParseStatus(options.Status)
				if err != nil {
					return err
				}
				update.Status = &status
			}
			if cmd.Flags().Changed("description") {
				update.Description = &options.Description
			}
			if cmd.Flags().Changed("deadline") {
				if err := task.ValidateDeadline(options.Deadline); err != nil {
					return err
				}
				update.Deadline = &options.Deadline
			}

			client := getAPIClient(cmd.Context())
			updated, err := client.UpdateTask(cmd.Context(), args[0], update)
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(TaskList{ConvertTaskToDisplay(updated)}, &options.RenderOptions)
		},
	}

	cmd.Flags().StringVarP(&options.Status, "status", "s", "", "new status (TODO, IN PROGRESS, DONE)")
	cmd.Flags().StringVarP(&options.Description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&options.Deadline, "deadline", "", "new deadline as YYYY-MM-DD")
	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
