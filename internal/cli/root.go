package cli

import (
	"github.com/beaconcs/beacon/internal/catalog"
	"github.com/beaconcs/beacon/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Clients service.ClientService
	Plans   service.PlanService
	Triage  service.TriageService
	Alerts  service.AlertService
	Catalog *catalog.Catalog

	// IsInteractive reports whether stdin is a terminal; the questionnaire
	// wizard is only offered when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "beacon" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "beacon",
		Short: "Customer success console: onboarding plans, triage, and health alerts",
	}

	root.AddCommand(
		newClientCmd(app),
		newPlanCmd(app),
		newTriageCmd(app),
		newAlertCmd(app),
		newCatalogCmd(app),
	)

	return root
}

// moduleNames maps catalog module IDs to display names for the formatter.
func (app *App) moduleNames() map[string]string {
	names := make(map[string]string, len(app.Catalog.Modules))
	for _, m := range app.Catalog.Modules {
		names[m.ID] = m.Name
	}
	return names
}
