package planning

import (
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCadence() CadenceTable {
	return CadenceTable{
		domain.UrgencyHigh:   2,
		domain.UrgencyNormal: 1,
	}
}

func undatedSessions(n int) []domain.Session {
	sessions := make([]domain.Session, n)
	for i := range sessions {
		sessions[i] = domain.Session{Number: i + 1, ModuleIDs: []string{"m"}}
	}
	return sessions
}

func TestScheduleSessions_HighUrgencyThreeBusinessDays(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	out, err := ScheduleSessions(undatedSessions(2), monday, domain.UrgencyHigh, testCadence())
	require.NoError(t, err)

	assert.Equal(t, monday, out[0].SuggestedDate)
	// Monday + 3 business days = Thursday the same week.
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), out[1].SuggestedDate)
	assert.Equal(t, time.Thursday, out[1].SuggestedDate.Weekday())
}

func TestScheduleSessions_NormalUrgencySevenBusinessDays(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	out, err := ScheduleSessions(undatedSessions(2), monday, domain.UrgencyNormal, testCadence())
	require.NoError(t, err)

	// Monday + 7 business days = Wednesday the following week.
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), out[1].SuggestedDate)
}

func TestScheduleSessions_StartDateUsedVerbatim(t *testing.T) {
	// A Saturday start is kept as given; no weekend adjustment on session 1.
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	out, err := ScheduleSessions(undatedSessions(3), saturday, domain.UrgencyHigh, testCadence())
	require.NoError(t, err)

	assert.Equal(t, saturday, out[0].SuggestedDate)
	for _, s := range out[1:] {
		wd := s.SuggestedDate.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestScheduleSessions_DatesStrictlyIncrease(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for _, urgency := range []domain.Urgency{domain.UrgencyNormal, domain.UrgencyHigh} {
		out, err := ScheduleSessions(undatedSessions(8), start, urgency, testCadence())
		require.NoError(t, err)

		for i := 1; i < len(out); i++ {
			assert.True(t, out[i].SuggestedDate.After(out[i-1].SuggestedDate),
				"urgency %s: session %d must be after session %d", urgency, i+1, i)
		}
	}
}

func TestScheduleSessions_AnnotatesStatusAndClearsExecution(t *testing.T) {
	executed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	sessions := undatedSessions(2)
	sessions[0].Status = domain.SessionCompleted
	sessions[0].ExecutionDate = &executed

	out, err := ScheduleSessions(sessions, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), domain.UrgencyHigh, testCadence())
	require.NoError(t, err)

	for _, s := range out {
		assert.Equal(t, domain.SessionScheduled, s.Status)
		assert.Nil(t, s.ExecutionDate)
	}
}

func TestScheduleSessions_PureAndRepeatable(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	first, err := ScheduleSessions(undatedSessions(5), start, domain.UrgencyHigh, testCadence())
	require.NoError(t, err)
	second, err := ScheduleSessions(undatedSessions(5), start, domain.UrgencyHigh, testCadence())
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].SuggestedDate, second[i].SuggestedDate)
	}
}

func TestScheduleSessions_ZeroStartDateRejected(t *testing.T) {
	_, err := ScheduleSessions(undatedSessions(1), time.Time{}, domain.UrgencyHigh, testCadence())
	assert.Error(t, err)
}

func TestAddBusinessDays_SkipsWeekends(t *testing.T) {
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)

	got := AddBusinessDays(friday, 1)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), got, "one business day after Friday is Monday")

	got = AddBusinessDays(friday, 5)
	assert.Equal(t, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), got, "five business days after Friday is next Friday")
}
