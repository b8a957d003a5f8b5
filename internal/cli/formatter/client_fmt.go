package formatter

import (
	"github.com/beaconcs/beacon/internal/domain"
)

// FormatClientList renders a styled client table.
func FormatClientList(clients []*domain.Client) string {
	headers := []string{"CODE", "NAME", "SEGMENT", "OWNER", "STATUS"}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			c.DisplayID(),
			Bold(c.Name),
			c.Segment,
			c.Owner,
			ClientStatusPill(c.Status),
		})
	}
	return RenderBox("Clients", RenderTable(headers, rows))
}
