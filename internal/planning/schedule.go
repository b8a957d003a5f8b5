package planning

import (
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
)

// CadenceTable maps an urgency level to a sessions-per-week count.
type CadenceTable map[domain.Urgency]int

// GapBusinessDays returns the business-day gap between consecutive sessions
// for the given urgency: two sessions per week means a 3-day gap, any other
// frequency means 7.
func (t CadenceTable) GapBusinessDays(u domain.Urgency) int {
	if t[u] == 2 {
		return 3
	}
	return 7
}

// AddBusinessDays advances from the given date one calendar day at a time,
// counting only Monday through Friday, until n business days have elapsed.
func AddBusinessDays(from time.Time, n int) time.Time {
	d := from
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}
	return d
}

// ScheduleSessions assigns suggested dates to built sessions. Session 1 keeps
// the caller-supplied start date verbatim (no weekend adjustment); each later
// session advances the configured business-day gap from its predecessor.
// Every session comes back with status scheduled and no execution date.
//
// The function is pure and stateless: identical inputs reproduce identical
// dates, and no merging with prior schedules happens here. A zero start date
// is a caller contract violation, surfaced immediately.
func ScheduleSessions(sessions []domain.Session, startDate time.Time, urgency domain.Urgency, cadence CadenceTable) ([]domain.Session, error) {
	if startDate.IsZero() {
		return nil, fmt.Errorf("schedule: start date is required")
	}

	gap := cadence.GapBusinessDays(urgency)
	out := make([]domain.Session, len(sessions))
	date := startDate
	for i, s := range sessions {
		if i > 0 {
			date = AddBusinessDays(date, gap)
		}
		s.SuggestedDate = date
		s.ExecutionDate = nil
		s.Status = domain.SessionScheduled
		out[i] = s
	}
	return out, nil
}
