package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage client accounts",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientShowCmd(app),
		newClientUpdateCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var code, name, segment, owner string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				AccountCode: strings.ToUpper(code),
				Name:        name,
				Segment:     segment,
				Owner:       owner,
				Status:      domain.ClientOnboarding,
			}
			if err := app.Clients.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Registered client %s [%s]\n", c.Name, c.AccountCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Account code (3-6 uppercase letters + 2-4 digits, e.g. ACME01)")
	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&segment, "segment", "", "Market segment")
	cmd.Flags().StringVar(&owner, "owner", "", "Responsible CSM")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}
			fmt.Println(formatter.FormatClientList(clients))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include churned clients")
	return cmd
}

func newClientShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <client>",
		Short: "Show one client with open alerts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatClientList([]*domain.Client{client}))

			alerts, err := app.Alerts.ListByClient(ctx, client.ID, true)
			if err != nil {
				return err
			}
			if len(alerts) > 0 {
				fmt.Println(formatter.FormatAlertList(alerts))
			}
			return nil
		},
	}
	return cmd
}

func newClientUpdateCmd(app *App) *cobra.Command {
	var name, segment, owner, status string

	cmd := &cobra.Command{
		Use:   "update <client>",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if name != "" {
				client.Name = name
			}
			if segment != "" {
				client.Segment = segment
			}
			if owner != "" {
				client.Owner = owner
			}
			if status != "" {
				switch domain.ClientStatus(status) {
				case domain.ClientOnboarding, domain.ClientActive, domain.ClientChurned:
					client.Status = domain.ClientStatus(status)
				default:
					return fmt.Errorf("invalid status %q (onboarding, active, churned)", status)
				}
			}

			if err := app.Clients.Update(ctx, client); err != nil {
				return err
			}
			fmt.Printf("Updated client %s\n", client.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&segment, "segment", "", "New segment")
	cmd.Flags().StringVar(&owner, "owner", "", "New responsible CSM")
	cmd.Flags().StringVar(&status, "status", "", "New status (onboarding, active, churned)")

	return cmd
}
