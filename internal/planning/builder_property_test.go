package planning

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildSessions_Invariants property-tests the packing contract over
// random catalogs: the cap holds for every session after the locked one
// unless the session is a single oversized module, prerequisites never land
// after their dependents, and every live module appears exactly once.
func TestBuildSessions_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	groups := []string{"alpha", "beta", "gamma"}

	for trial := 0; trial < 200; trial++ {
		maxMin := rng.Intn(90) + 30 // 30–119
		numModules := rng.Intn(14) + 1

		catalog := make([]domain.Module, numModules)
		for i := range catalog {
			m := domain.Module{
				ID:          fmt.Sprintf("mod-%02d", i),
				LiveMinutes: rng.Intn(140) + 10, // 10–149, some exceed the cap
				Locked:      i < 2 && rng.Intn(2) == 0,
			}
			if !m.Locked && rng.Intn(3) > 0 {
				m.AffinityGroup = groups[rng.Intn(len(groups))]
			}
			// Prerequisites only point backwards in the catalog. Locked
			// modules may only depend on other locked modules; anything else
			// could never precede session 1 and is rejected by catalog
			// validation.
			if i > 0 && rng.Intn(3) == 0 {
				j := rng.Intn(i)
				if !m.Locked || catalog[j].Locked {
					m.Prerequisites = []string{fmt.Sprintf("mod-%02d", j)}
				}
			}
			catalog[i] = m
		}

		cls := make(domain.Classification, numModules)
		for _, m := range catalog {
			if m.Locked || rng.Intn(2) == 0 {
				cls[m.ID] = domain.ModeLive
			} else {
				cls[m.ID] = domain.ModeOnline
			}
		}

		sessions := BuildSessions(BuildInput{
			Catalog:        catalog,
			GroupOrder:     groups,
			Classification: cls,
			MaxSessionMin:  maxMin,
		})

		lockedCount := 0
		for _, m := range catalog {
			if m.Locked {
				lockedCount++
			}
		}

		// Invariant 1: sessions are numbered contiguously from 1.
		for i, s := range sessions {
			assert.Equal(t, i+1, s.Number, "trial %d", trial)
		}

		// Invariant 2: every live module appears exactly once.
		seen := make(map[string]int)
		for _, s := range sessions {
			for _, id := range s.ModuleIDs {
				seen[id]++
			}
		}
		for _, m := range catalog {
			if cls[m.ID] == domain.ModeLive {
				assert.Equal(t, 1, seen[m.ID], "trial %d: module %s placement count", trial, m.ID)
			} else {
				assert.Zero(t, seen[m.ID], "trial %d: online module %s must not be packed", trial, m.ID)
			}
		}

		// Invariant 3: the cap holds everywhere except the locked session and
		// single oversized modules.
		start := 0
		if lockedCount > 0 {
			start = 1
		}
		for _, s := range sessions[start:] {
			if len(s.ModuleIDs) == 1 {
				continue
			}
			assert.LessOrEqual(t, s.TotalMinutes, maxMin,
				"trial %d: session %d exceeds cap", trial, s.Number)
		}

		// Invariant 4: live prerequisites never land after their dependents.
		sessionOf := make(map[string]int)
		for _, s := range sessions {
			for _, id := range s.ModuleIDs {
				sessionOf[id] = s.Number
			}
		}
		for _, m := range catalog {
			if cls[m.ID] != domain.ModeLive {
				continue
			}
			for _, pre := range m.Prerequisites {
				if cls[pre] != domain.ModeLive {
					continue
				}
				assert.LessOrEqual(t, sessionOf[pre], sessionOf[m.ID],
					"trial %d: prerequisite %s after dependent %s", trial, pre, m.ID)
			}
		}

		// Invariant 5: scheduling the built sessions yields strictly
		// increasing dates with no weekend after session 1.
		startDate := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.Intn(28))
		scheduled, err := ScheduleSessions(sessions, startDate, domain.UrgencyHigh, testCadence())
		require.NoError(t, err)
		for i := 1; i < len(scheduled); i++ {
			assert.True(t, scheduled[i].SuggestedDate.After(scheduled[i-1].SuggestedDate),
				"trial %d: dates must strictly increase", trial)
			wd := scheduled[i].SuggestedDate.Weekday()
			assert.NotEqual(t, time.Saturday, wd, "trial %d", trial)
			assert.NotEqual(t, time.Sunday, wd, "trial %d", trial)
		}
	}
}
