package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kvisle/taskbridge/backend/task"
)

type taskCreateOptions struct {
	Status        string
	Description   string
	Deadline      string
	RenderOptions RenderOptions
}

func NewTaskCreateCmd() *cobra.Command {
	options := &taskCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		Example: `  # Create an open task
  taskbridge task create "Pay invoices"

  # Create a task with everything filled in
  taskbridge task create "Ship release" --status "IN PROGRESS" --description "v1.2" --deadline 2025-12-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := task.ParseStatus(options.Status)
			if err != nil {
				return err
			}
			if err := task.ValidateDeadline(options.Deadline); err != nil {
				return err
			}

			client := getAPIClient(cmd.Context())
			created, err := client.CreateTask(cmd.Context(), task.Task{
				Name:        args[0],
				Status:      status,
				Description: options.Description,
				Deadline:    options.Deadline,
			})
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(TaskList{ConvertTaskToDisplay(created)}, &options.RenderOptions)
		},
	}

	cmd.Flags().StringVarP(&options.Status, "status", "s", string(task.StatusTodo), "initial status (TODO, IN PROGRESS, DONE)")
	cmd.Flags().StringVarP(&options.Description, "description", "d", "", "free-text description")
	cmd.Flags().StringVar(&options.Deadline, "deadline", "", "deadline as YYYY-MM-DD")
	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
