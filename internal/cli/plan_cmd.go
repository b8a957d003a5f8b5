package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/spf13/cobra"
)

// resolvePlanRef accepts a plan UUID or a client reference (account code or
// UUID); a client reference resolves to the client's plan in progress.
func resolvePlanRef(ctx context.Context, app *App, ref string) (*domain.OnboardingPlan, error) {
	if ref == "" {
		return nil, fmt.Errorf("plan or client reference is required")
	}

	plan, err := app.Plans.Get(ctx, ref)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	client, err := app.Clients.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("no plan or client matches %q", ref)
	}
	plan, err = app.Plans.ActiveForClient(ctx, client.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("client %s has no plan in progress", client.DisplayID())
		}
		return nil, err
	}
	return plan, nil
}

// resolveSessionID accepts a session UUID or a session number within the plan.
func resolveSessionID(plan *domain.OnboardingPlan, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		for _, s := range plan.Sessions {
			if s.Number == n {
				return s.ID, nil
			}
		}
		return "", fmt.Errorf("plan has no session %d", n)
	}
	if s := plan.SessionByID(ref); s != nil {
		return s.ID, nil
	}
	return "", fmt.Errorf("session %q not found in plan", ref)
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage onboarding plans",
	}

	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanCompleteSessionCmd(app),
		newPlanFirstValueCmd(app),
		newPlanTutorialCmd(app),
		newPlanReclassifyCmd(app),
		newPlanHandoffCmd(app),
		newPlanCancelCmd(app),
	)

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var clientRef, start, urgency, author string
	var answerFlags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Run the questionnaire and build an onboarding plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := app.Clients.Resolve(ctx, clientRef)
			if err != nil {
				return err
			}

			startDate := time.Now().UTC().Truncate(24 * time.Hour)
			if start != "" {
				startDate, err = time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}

			var answers domain.Answers
			if len(answerFlags) > 0 {
				answers, err = parseAnswerFlags(app.Catalog, answerFlags)
			} else {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("no terminal detected: provide answers with --answer question=value")
				}
				answers, err = runQuestionnaireWizard(app.Catalog)
			}
			if err != nil {
				return err
			}

			plan, err := app.Plans.CreatePlan(ctx, contract.CreatePlanRequest{
				ClientID:  client.ID,
				Answers:   answers,
				StartDate: startDate,
				Urgency:   domain.Urgency(urgency),
				Author:    author,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created plan %s for %s: %d sessions, %d online modules\n",
				formatter.TruncID(plan.ID), client.DisplayID(), len(plan.Sessions), len(plan.OnlineModules))
			return showPlan(ctx, app, plan.ID)
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Client account code or ID")
	cmd.Flags().StringVar(&start, "start", "", "First session date (YYYY-MM-DD, default today)")
	cmd.Flags().Var(newEnumValue(&urgency, "normal", domain.ValidUrgencies), "urgency", "Cadence urgency (normal, high)")
	cmd.Flags().StringVar(&author, "by", "", "Author recorded on the plan")
	cmd.Flags().StringArrayVar(&answerFlags, "answer", nil, "Questionnaire answer question=value (repeatable; skips the wizard)")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List onboarding plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plans, err := app.Plans.List(ctx, all)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
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

			fmt.Println(formatter.FormatPlanList(plans, names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and canceled plans")
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-or-client>",
		Short: "Show a plan's sessions, tracking, and adjustment log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}
			return showPlan(ctx, app, plan.ID)
		},
	}
}

func showPlan(ctx context.Context, app *App, planID string) error {
	view, err := app.Plans.GetStatus(ctx, planID)
	if err != nil {
		return err
	}
	fmt.Println(formatter.FormatPlanStatus(view, app.moduleNames()))
	return nil
}

func newPlanCompleteSessionCmd(app *App) *cobra.Command {
	var date, notes string

	cmd := &cobra.Command{
		Use:   "complete-session <plan-or-client> <session>",
		Short: "Record a live session as executed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}
			sessionID, err := resolveSessionID(plan, args[1])
			if err != nil {
				return err
			}

			var executedAt time.Time
			if date != "" {
				executedAt, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}

			updated, err := app.Plans.CompleteSession(ctx, contract.CompleteSessionRequest{
				PlanID:     plan.ID,
				SessionID:  sessionID,
				ExecutedAt: executedAt,
				Notes:      notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Session completed. Progress: %d%%\n", updated.ProgressPct)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Execution date (YYYY-MM-DD, default now)")
	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")
	return cmd
}

func newPlanFirstValueCmd(app *App) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "first-value <plan-or-client> <module>",
		Short: "Mark a live module's first value as achieved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}

			updated, err := app.Plans.MarkFirstValue(ctx, contract.FirstValueRequest{
				PlanID:   plan.ID,
				ModuleID: args[1],
				Comment:  comment,
			})
			if err != nil {
				return err
			}

			fmt.Printf("First value recorded. Progress: %d%%\n", updated.ProgressPct)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "What the client achieved")
	return cmd
}

func newPlanTutorialCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tutorial <plan-or-client> <module>",
		Short: "Mark an online module's tutorial as sent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}

			updated, err := app.Plans.MarkTutorialSent(ctx, plan.ID, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Tutorial marked sent. Progress: %d%%\n", updated.ProgressPct)
			return nil
		},
	}
}

func newPlanReclassifyCmd(app *App) *cobra.Command {
	var mode, why, author string

	cmd := &cobra.Command{
		Use:   "reclassify <plan-or-client> <module>",
		Short: "Switch a module's delivery mode and rebuild the remaining sessions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Plans.Reclassify(ctx, contract.ReclassifyRequest{
				PlanID:        plan.ID,
				ModuleID:      args[1],
				NewMode:       domain.DeliveryMode(mode),
				Justification: why,
				Author:        author,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Reclassified %s to %s: %d sessions preserved, %d rebuilt\n",
				args[1], mode, resp.PreservedCount, resp.RegeneratedCount)
			return showPlan(ctx, app, plan.ID)
		},
	}

	cmd.Flags().Var(newEnumValue(&mode, "", domain.ValidDeliveryModes), "mode", "New delivery mode (live, online)")
	cmd.Flags().StringVar(&why, "why", "", "Justification (at least 10 characters)")
	cmd.Flags().StringVar(&author, "by", "", "Author recorded on the adjustment")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("why")

	return cmd
}

func newPlanHandoffCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "handoff <plan-or-client>",
		Short: "Close an eligible plan and promote the client to active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}

			done, err := app.Plans.ExecuteHandoff(ctx, plan.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Handoff complete: plan %s closed, client promoted to active.\n", formatter.TruncID(done.ID))
			return nil
		},
	}
}

func newPlanCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <plan-or-client>",
		Short: "Cancel a plan in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := resolvePlanRef(ctx, app, args[0])
			if err != nil {
				return err
			}

			canceled, err := app.Plans.Cancel(ctx, plan.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Canceled plan %s.\n", formatter.TruncID(canceled.ID))
			return nil
		},
	}
}
