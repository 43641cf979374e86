package cmd

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type messageOptions struct {
	SessionID     string
	RenderOptions RenderOptions
}

func NewMessageCmd() *cobra.Command {
	options := &messageOptions{}

	cmd := &cobra.Command{
		Use:   "message TEXT...",
		Short: "Send a natural-language instruction to the automation",
		Args:  cobra.MinimumNArgs(1),
		Example: `  # Ask the automation anything about your tasks
  taskbridge message "What is overdue?"

  # Keep a conversation going across calls
  taskbridge message --session weekly-review "Summarize this week"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := options.SessionID
			if sessionID == "" {
				sessionID = "cli-" + uuid.NewString()
			}

			client := getAPIClient(cmd.Context())
			reply, err := client.SendMessage(cmd.Context(), strings.Join(args, " "), sessionID)
			if err != nil {
				return clientError(cmd.Context(), err)
			}

			return getRenderer(cmd.Context()).Render(&MessageDisplay{
				Response:  reply,
				SessionID: sessionID,
			}, &options.RenderOptions)
		},
	}

	cmd.Flags().StringVar(&options.SessionID, "session", "", "session id for conversational context")
	addRenderOptions(cmd, &options.RenderOptions)

	return cmd
}
