package formatter

import (
	"fmt"
	"strings"

	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/domain"
)

// FormatPlanList renders a styled plan overview table.
func FormatPlanList(plans []*domain.OnboardingPlan, clientNames map[string]string) string {
	headers := []string{"PLAN", "CLIENT", "STATUS", "PROGRESS", "SESSIONS", "START"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		name := clientNames[p.ClientID]
		if name == "" {
			name = TruncID(p.ClientID)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(name),
			PlanStatusPill(p.Status),
			RenderProgress(p.ProgressPct, 10),
			fmt.Sprintf("%d/%d", p.CompletedSessions(), len(p.Sessions)),
			HumanDate(p.StartDate),
		})
	}

	return RenderBox("Onboarding Plans", RenderTable(headers, rows))
}

// FormatPlanStatus renders the full status card for one plan: header with
// progress and handoff readiness, the session table, tracking lists, and the
// adjustment log.
func FormatPlanStatus(view *contract.PlanStatusView, moduleNames map[string]string) string {
	p := view.Plan
	var b strings.Builder

	b.WriteString(StyleBold.Render(view.Client.Name) + " " + Dim(view.Client.DisplayID()) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), PlanStatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS"), RenderProgress(p.ProgressPct, 20)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("HANDOFF "), handoffIndicator(p.HandoffEligible)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("URGENCY "), string(p.Urgency)))

	b.WriteString(Header("Sessions") + "\n")
	b.WriteString(formatSessionTable(p.Sessions, moduleNames))

	if len(p.FirstValues) > 0 {
		b.WriteString("\n" + Header("First Values") + "\n")
		for _, fv := range p.FirstValues {
			b.WriteString(trackingLine(checkbox(fv.Achieved), moduleName(fv.ModuleID, moduleNames), fv.Comment))
		}
	}

	if len(p.OnlineModules) > 0 {
		b.WriteString("\n" + Header("Online Tutorials") + "\n")
		for _, ot := range p.OnlineModules {
			b.WriteString(trackingLine(checkbox(ot.TutorialSent), moduleName(ot.ModuleID, moduleNames), ""))
		}
	}

	if len(p.Adjustments) > 0 {
		b.WriteString("\n" + Header("Adjustments") + "\n")
		for _, adj := range p.Adjustments {
			b.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
				Dim(adj.CreatedAt.Format("2006-01-02")),
				moduleName(adj.ModuleID, moduleNames),
				ModeBadge(adj.PreviousMode),
				Dim("→")+" "+ModeBadge(adj.NewMode),
				Dim(adj.Author)))
			b.WriteString("  " + Dim(adj.Justification) + "\n")
		}
	}

	return RenderBox("", b.String())
}

func formatSessionTable(sessions []domain.Session, moduleNames map[string]string) string {
	headers := []string{"#", "MODULES", "DURATION", "DATE", "STATUS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		names := make([]string, len(s.ModuleIDs))
		for i, id := range s.ModuleIDs {
			names[i] = moduleName(id, moduleNames)
		}
		date := HumanDate(s.SuggestedDate)
		if s.ExecutionDate != nil {
			date = HumanDate(*s.ExecutionDate)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Number),
			strings.Join(names, ", "),
			Minutes(s.TotalMinutes),
			date,
			SessionStatusPill(s.Status),
		})
	}
	return RenderTable(headers, rows)
}

func handoffIndicator(eligible bool) string {
	if eligible {
		return StyleGreen.Render("✔ ready")
	}
	return StyleYellow.Render("○ not yet")
}

func checkbox(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

func trackingLine(mark, name, note string) string {
	line := fmt.Sprintf("  %s %s", mark, name)
	if note != "" {
		line += "  " + Dim(note)
	}
	return line + "\n"
}

func moduleName(id string, names map[string]string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}
