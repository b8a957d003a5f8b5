package formatter

import (
	"github.com/beaconcs/beacon/internal/domain"
)

// FormatTriageQueue renders the conversation queue, highest priority first.
func FormatTriageQueue(convs []*domain.Conversation, clientNames map[string]string) string {
	headers := []string{"ID", "CLIENT", "SUBJECT", "PRIORITY", "STATUS", "ASSIGNEE", "AGE"}
	rows := make([][]string, 0, len(convs))
	for _, c := range convs {
		name := clientNames[c.ClientID]
		if name == "" {
			name = TruncID(c.ClientID)
		}
		assignee := c.Assignee
		if assignee == "" {
			assignee = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			name,
			Bold(c.Subject),
			PriorityBadge(c.Priority),
			string(c.Status),
			assignee,
			HumanTimestamp(c.CreatedAt),
		})
	}
	return RenderBox("Triage Queue", RenderTable(headers, rows))
}

// FormatAlertList renders a client's health alerts.
func FormatAlertList(alerts []*domain.Alert) string {
	headers := []string{"ID", "KIND", "SEVERITY", "STATUS", "RAISED", "MESSAGE"}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(a.Kind),
			PriorityBadge(a.Severity),
			string(a.Status),
			HumanTimestamp(a.CreatedAt),
			Dim(a.Message),
		})
	}
	return RenderBox("Alerts", RenderTable(headers, rows))
}
