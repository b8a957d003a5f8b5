package formatter

import (
	"fmt"
	"strings"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ModeBadge renders a colored delivery-mode tag.
func ModeBadge(mode domain.DeliveryMode) string {
	switch mode {
	case domain.ModeLive:
		return StylePurple.Render("[live]")
	case domain.ModeOnline:
		return StyleBlue.Render("[online]")
	default:
		return StyleDim.Render("[?]")
	}
}

// PlanStatusPill renders a colored plan status label.
func PlanStatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanInProgress:
		return StyleYellow.Render("in progress")
	case domain.PlanCompleted:
		return StyleGreen.Render("completed")
	case domain.PlanCanceled:
		return StyleDim.Render("canceled")
	default:
		return StyleDim.Render(string(status))
	}
}

// SessionStatusPill renders a colored session status label.
func SessionStatusPill(status domain.SessionStatus) string {
	if status == domain.SessionCompleted {
		return StyleGreen.Render("done")
	}
	return StyleYellow.Render("scheduled")
}

// PriorityBadge renders a colored priority/severity indicator.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("● high")
	case domain.PriorityLow:
		return StyleDim.Render("● low")
	default:
		return StyleYellow.Render("● normal")
	}
}

// ClientStatusPill renders a colored client lifecycle label.
func ClientStatusPill(status domain.ClientStatus) string {
	switch status {
	case domain.ClientOnboarding:
		return StyleYellow.Render("onboarding")
	case domain.ClientActive:
		return StyleGreen.Render("active")
	case domain.ClientChurned:
		return StyleDim.Render("churned")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
