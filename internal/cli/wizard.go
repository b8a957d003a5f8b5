package cli

import (
	"fmt"
	"strings"

	"github.com/beaconcs/beacon/internal/catalog"
	"github.com/beaconcs/beacon/internal/cli/formatter"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// beaconHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func beaconHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runQuestionnaireWizard walks the catalog questionnaire interactively and
// returns the collected answers.
func runQuestionnaireWizard(cat *catalog.Catalog) (domain.Answers, error) {
	bools := make(map[string]*bool)
	selects := make(map[string]*string)

	fields := make([]huh.Field, 0, len(cat.Questions))
	for _, q := range cat.Questions {
		switch q.Type {
		case "bool":
			v := new(bool)
			bools[q.ID] = v
			fields = append(fields, huh.NewConfirm().Title(q.Prompt).Value(v))
		case "select":
			v := new(string)
			selects[q.ID] = v
			options := make([]huh.Option[string], 0, len(q.Options))
			for _, opt := range q.Options {
				options = append(options, huh.NewOption(opt, opt))
			}
			fields = append(fields, huh.NewSelect[string]().Title(q.Prompt).Options(options...).Value(v))
		}
	}
	if len(fields) == 0 {
		return domain.Answers{}, nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(beaconHuhTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("questionnaire aborted: %w", err)
	}

	answers := make(domain.Answers)
	for id, v := range bools {
		answers[id] = *v
	}
	for id, v := range selects {
		answers[id] = *v
	}
	return answers, nil
}

// parseAnswerFlags converts repeated --answer question=value flags into typed
// answers, using the catalog questionnaire to coerce and validate values.
func parseAnswerFlags(cat *catalog.Catalog, raw []string) (domain.Answers, error) {
	answers := make(domain.Answers, len(raw))
	for _, pair := range raw {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid answer %q: expected question=value", pair)
		}

		q, ok := cat.Question(key)
		if !ok {
			return nil, fmt.Errorf("unknown question %q", key)
		}

		switch q.Type {
		case "bool":
			switch strings.ToLower(value) {
			case "true", "yes", "y":
				answers[key] = true
			case "false", "no", "n":
				answers[key] = false
			default:
				return nil, fmt.Errorf("answer for %q must be yes or no, got %q", key, value)
			}
		case "select":
			valid := false
			for _, opt := range q.Options {
				if opt == value {
					valid = true
					break
				}
			}
			if !valid {
				return nil, fmt.Errorf("answer for %q must be one of %s, got %q", key, strings.Join(q.Options, ", "), value)
			}
			answers[key] = value
		}
	}
	return answers, nil
}
