package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func NewTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks in the external store",
	}

	cmd.AddCommand(NewTaskListCmd())
	cmd.AddCommand(NewTaskCreateCmd())
	cmd.AddCommand(NewTaskUpdateCmd())
	cmd.AddCommand(NewTaskDeleteCmd())

	return cmd
}

func confirmDeletion(stdin io.Reader, stdout io.Writer, name string) bool {
	message := fmt.Sprintf("Are you sure you want to delete task %q?", name)
	return confirm(stdin, stdout, message)
}

func confirm(stdin io.Reader, stdout io.Writer, message string) bool {
	fmt.Fprintf(stdout, "%s (y/n): ", message)
	var confirm string
	_, err := fmt.Fscan(stdin, &confirm)
	if err != nil {
		return false
	}

	confirm = strings.TrimSpace(strings.ToLower(confirm))
	return confirm == "y" || confirm == "yes"
}
