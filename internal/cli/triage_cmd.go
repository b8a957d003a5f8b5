package cli

import (
	"context"
	"fmt"

	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/spf13/cobra"
)

func newTriageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Work the support conversation queue",
	}

	cmd.AddCommand(
		newTriageLogCmd(app),
		newTriageQueueCmd(app),
		newTriageAssignCmd(app),
		newTriageStatusCmd(app),
	)

	return cmd
}

func newTriageLogCmd(app *App) *cobra.Command {
	var clientRef, channel, subject, priority string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an incoming conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, clientRef)
			if err != nil {
				return err
			}

			conv := &domain.Conversation{
				ClientID: client.ID,
				Channel:  channel,
				Subject:  subject,
				Priority: domain.Priority(priority),
			}
			if err := app.Triage.Log(ctx, conv); err != nil {
				return err
			}

			fmt.Printf("Logged conversation %s for %s\n", formatter.TruncID(conv.ID), client.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Client account code or ID")
	cmd.Flags().StringVar(&channel, "channel", "email", "Channel (email, chat, phone)")
	cmd.Flags().StringVar(&subject, "subject", "", "Conversation subject")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, normal, high)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newTriageQueueCmd(app *App) *cobra.Command {
	var status, clientRef string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the triage queue, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			clientID := ""
			if clientRef != "" {
				client, err := app.Clients.Resolve(ctx, clientRef)
				if err != nil {
					return err
				}
				clientID = client.ID
			}
			if status != "" && !domain.ValidConversationStatuses[status] {
				return fmt.Errorf("invalid status %q (new, triaged, waiting, resolved)", status)
			}

			convs, err := app.Triage.Queue(ctx, domain.ConversationStatus(status), clientID)
			if err != nil {
				return err
			}
			if len(convs) == 0 {
				fmt.Println("Queue is empty.")
				return nil
			}

			clients, err := app.Clients.List(ctx, true)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(clients))
			for _, c := range clients {
				names[c.ID] = c.Name
			}

			fmt.Println(formatter.FormatTriageQueue(convs, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "new", "Filter by status (empty for all)")
	cmd.Flags().StringVar(&clientRef, "client", "", "Filter by client")
	return cmd
}

func newTriageAssignCmd(app *App) *cobra.Command {
	var priority, assignee string

	cmd := &cobra.Command{
		Use:   "assign <conversation>",
		Short: "Set priority and owner on a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := app.Triage.Triage(context.Background(), args[0], domain.Priority(priority), assignee)
			if err != nil {
				return err
			}
			fmt.Printf("Conversation %s is now %s\n", formatter.TruncID(conv.ID), conv.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, normal, high)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Owner")
	return cmd
}

func newTriageStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <conversation> <status>",
		Short: "Move a conversation to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := app.Triage.SetStatus(context.Background(), args[0], domain.ConversationStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Conversation %s is now %s\n", formatter.TruncID(conv.ID), conv.Status)
			return nil
		},
	}
}
