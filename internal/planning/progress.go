package planning

import (
	"math"

	"github.com/beaconcs/beacon/internal/domain"
)

// Progress weights. Sessions dominate because they gate the handoff meeting;
// first values and tutorials round out the picture.
const (
	weightSessions    = 60
	weightFirstValues = 30
	weightTutorials   = 10
)

// Progress is the ProgressTracker output: a 0-100 percentage and the
// handoff-eligibility flag.
type Progress struct {
	Pct             int
	HandoffEligible bool
}

// ComputeProgress derives completion state from the plan. Each ratio defaults
// to 1 when its denominator is zero, so an empty plan reads as fully complete.
// Eligibility requires full completion in all three categories; the weighted
// percentage never substitutes for it.
func ComputeProgress(p *domain.OnboardingPlan) Progress {
	completedSessions := p.CompletedSessions()
	totalSessions := len(p.Sessions)

	achieved := 0
	for _, fv := range p.FirstValues {
		if fv.Achieved {
			achieved++
		}
	}
	totalLive := len(p.FirstValues)

	sent := 0
	for _, ot := range p.OnlineModules {
		if ot.TutorialSent {
			sent++
		}
	}
	totalOnline := len(p.OnlineModules)

	pct := weightSessions*ratio(completedSessions, totalSessions) +
		weightFirstValues*ratio(achieved, totalLive) +
		weightTutorials*ratio(sent, totalOnline)

	return Progress{
		Pct: int(math.Round(pct)),
		HandoffEligible: completedSessions == totalSessions &&
			achieved == totalLive &&
			sent == totalOnline,
	}
}

func ratio(done, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(done) / float64(total)
}
