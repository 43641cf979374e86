package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kvisle/taskbridge/backend/task"
)

type taskListOptions struct {
	Status        string
	RenderOptions RenderOptions
}

func NewTaskListCmd() *cobra.Command {
	options := &taskListOptions{}

	cmd := &cobra.Command{
		Use:     "list [flags]",
		Short:   "List all tasks",
		Aliases: []string{"ls"},
		Example: `  # List all tasks
  taskbridge task list

  # Only tasks that are still open
  taskbridge task list --status todo

  # List tasks in JSON format
  taskbridge task ls -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter string
			if options.Status != "" {
				status, err := task.ParseStatus(options.Status)
				if err != nil {
					return err
				}
				filter = string(status)
			}

			client := getAPIClient(cmd.Context())
			tasks, err := client.ListTasks(cmd.Context(), filter)
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(ConvertTasksToDisplay(tasks), &options.RenderOptions)
		},
	}

	cmd.Flags().StringVarP(&options.Status, "status", "s", "", "filter by status (TODO, IN PROGRESS, DONE)")
	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
