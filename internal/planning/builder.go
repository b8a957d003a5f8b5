package planning

import (
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/google/uuid"
)

// BuildInput carries everything SessionBuilder needs. Catalog order is
// significant: it is the tiebreak order everywhere below.
type BuildInput struct {
	Catalog        []domain.Module
	GroupOrder     []string // affinity groups in priority order
	Classification domain.Classification
	MaxSessionMin  int
}

// BuildSessions packs live-classified modules into ordered, undated sessions.
//
// Session 1 is always the full locked set combined into one session; its
// duration may exceed MaxSessionMin because the foundational modules are
// delivered together regardless of total time. The remaining live modules are
// ordered by walking the affinity groups in priority order, inserting any
// still-unplaced live prerequisites immediately before their dependent, then
// appending ungrouped live modules in catalog order. The ordered list is
// packed first-fit: a session closes the moment the next module would push it
// past the cap. A single module larger than the cap still gets its own
// session. There are no error conditions; zero or all-online input degrades
// to the minimal session list.
func BuildSessions(in BuildInput) []domain.Session {
	byID := make(map[string]domain.Module, len(in.Catalog))
	for _, m := range in.Catalog {
		byID[m.ID] = m
	}

	placed := make(map[string]bool)

	// Session 1: the locked set, exempt from the cap.
	var locked []string
	lockedMin := 0
	for _, m := range in.Catalog {
		if m.Locked {
			locked = append(locked, m.ID)
			lockedMin += m.LiveMinutes
			placed[m.ID] = true
		}
	}

	var ordered []string
	var place func(id string)
	place = func(id string) {
		if placed[id] {
			return
		}
		m, ok := byID[id]
		if !ok || in.Classification[id] != domain.ModeLive {
			return
		}
		placed[id] = true // marked before recursing to break prerequisite cycles
		for _, pre := range m.Prerequisites {
			place(pre)
		}
		ordered = append(ordered, id)
	}

	for _, group := range in.GroupOrder {
		for _, m := range in.Catalog {
			if m.AffinityGroup == group && in.Classification[m.ID] == domain.ModeLive {
				place(m.ID)
			}
		}
	}
	for _, m := range in.Catalog {
		if in.Classification[m.ID] == domain.ModeLive {
			place(m.ID)
		}
	}

	var sessions []domain.Session
	number := 1
	if len(locked) > 0 {
		sessions = append(sessions, domain.Session{
			ID:           uuid.New().String(),
			Number:       number,
			ModuleIDs:    locked,
			TotalMinutes: lockedMin,
		})
		number++
	}

	var current []string
	currentMin := 0
	flush := func() {
		if len(current) == 0 {
			return
		}
		sessions = append(sessions, domain.Session{
			ID:           uuid.New().String(),
			Number:       number,
			ModuleIDs:    current,
			TotalMinutes: currentMin,
		})
		number++
		current = nil
		currentMin = 0
	}
	for _, id := range ordered {
		d := byID[id].LiveMinutes
		if len(current) > 0 && currentMin+d > in.MaxSessionMin {
			flush()
		}
		current = append(current, id)
		currentMin += d
	}
	flush()

	return sessions
}
