package cli

import (
	"context"
	"fmt"

	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/spf13/cobra"
)

func newAlertCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Track client health alerts",
	}

	cmd.AddCommand(
		newAlertRecordCmd(app),
		newAlertListCmd(app),
		newAlertAckCmd(app),
		newAlertResolveCmd(app),
	)

	return cmd
}

func newAlertRecordCmd(app *App) *cobra.Command {
	var clientRef, kind, message, severity string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an alert raised by an external monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, clientRef)
			if err != nil {
				return err
			}

			alert := &domain.Alert{
				ClientID: client.ID,
				Kind:     kind,
				Message:  message,
				Severity: domain.Priority(severity),
			}
			if err := app.Alerts.Record(ctx, alert); err != nil {
				return err
			}

			fmt.Printf("Recorded alert %s for %s\n", formatter.TruncID(alert.ID), client.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Client account code or ID")
	cmd.Flags().StringVar(&kind, "kind", "", "Alert kind (e.g. usage_drop)")
	cmd.Flags().StringVar(&message, "message", "", "Alert detail")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity (low, normal, high)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func newAlertListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list <client>",
		Short: "List a client's alerts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			alerts, err := app.Alerts.ListByClient(ctx, client.ID, !all)
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Println("No alerts.")
				return nil
			}

			fmt.Println(formatter.FormatAlertList(alerts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include resolved alerts")
	return cmd
}

func newAlertAckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ack <alert>",
		Short: "Acknowledge an open alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alert, err := app.Alerts.Acknowledge(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Acknowledged alert %s\n", formatter.TruncID(alert.ID))
			return nil
		},
	}
}

func newAlertResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <alert>",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alert, err := app.Alerts.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Resolved alert %s\n", formatter.TruncID(alert.ID))
			return nil
		},
	}
}
