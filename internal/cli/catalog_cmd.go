package cli

import (
	"fmt"
	"strings"

	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the loaded module catalog",
	}

	cmd.AddCommand(newCatalogShowCmd(app))
	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show catalog modules and questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Catalog

			headers := []string{"MODULE", "NAME", "LIVE", "ONLINE", "GROUP", "PREREQS", "FLAGS"}
			rows := make([][]string, 0, len(cat.Modules))
			for _, m := range cat.Modules {
				flags := ""
				if m.Locked {
					flags = formatter.StylePurple.Render("locked")
				}
				group := m.AffinityGroup
				if group == "" {
					group = formatter.Dim("--")
				}
				prereqs := strings.Join(m.Prerequisites, ", ")
				if prereqs == "" {
					prereqs = formatter.Dim("--")
				}
				rows = append(rows, []string{
					m.ID,
					formatter.Bold(m.Name),
					formatter.Minutes(m.LiveMinutes),
					formatter.Minutes(m.OnlineMinutes),
					group,
					prereqs,
					flags,
				})
			}
			fmt.Println(formatter.RenderBox("Module Catalog", formatter.RenderTable(headers, rows)))

			if len(cat.Questions) > 0 {
				fmt.Println(formatter.Header("Questionnaire"))
				for _, q := range cat.Questions {
					line := fmt.Sprintf("  %s %s", formatter.Bold(q.ID), formatter.Dim(q.Prompt))
					if q.Type == "select" {
						line += " " + formatter.Dim("("+strings.Join(q.Options, ", ")+")")
					}
					fmt.Println(line)
				}
			}

			fmt.Printf("\nSession cap: %s. Group order: %s.\n",
				formatter.Minutes(cat.MaxSessionMin), strings.Join(cat.GroupOrder, " → "))
			return nil
		},
	}
}
