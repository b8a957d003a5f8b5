package domain

import "time"

// Session is one instructor-led onboarding appointment: an ordered set of
// live modules packed under the per-session duration cap.
type Session struct {
	ID            string
	Number        int // 1-based, contiguous
	ModuleIDs     []string
	TotalMinutes  int
	SuggestedDate time.Time
	ExecutionDate *time.Time
	Status        SessionStatus
	Notes         string
}

// Adjustment is one append-only reclassification record. Once written it is
// never mutated or deleted.
type Adjustment struct {
	ID            string
	ModuleID      string
	PreviousMode  DeliveryMode
	NewMode       DeliveryMode
	Justification string
	Author        string
	CreatedAt     time.Time
}

// OnlineTracking records tutorial delivery for one online-classified module.
type OnlineTracking struct {
	ModuleID     string
	TutorialSent bool
	SentAt       *time.Time
}

// FirstValueTracking records first-value achievement for one live module.
type FirstValueTracking struct {
	ModuleID   string
	Achieved   bool
	AchievedAt *time.Time
	Comment    string
}

// OnboardingPlan is the aggregate the planning engine produces and mutates.
// It is read and written whole; Version backs the compare-and-swap at the
// persistence boundary.
type OnboardingPlan struct {
	ID              string
	ClientID        string
	Classification  Classification
	Sessions        []Session
	OnlineModules   []OnlineTracking
	FirstValues     []FirstValueTracking
	Adjustments     []Adjustment
	Status          PlanStatus
	ProgressPct     int
	HandoffEligible bool
	StartDate       time.Time
	Urgency         Urgency
	Version         int
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionByID returns the session with the given ID, or nil.
func (p *OnboardingPlan) SessionByID(id string) *Session {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i]
		}
	}
	return nil
}

// CompletedSessions counts sessions with completed status.
func (p *OnboardingPlan) CompletedSessions() int {
	n := 0
	for _, s := range p.Sessions {
		if s.Status == SessionCompleted {
			n++
		}
	}
	return n
}

// FirstValueFor returns the tracking entry for a live module, or nil.
func (p *OnboardingPlan) FirstValueFor(moduleID string) *FirstValueTracking {
	for i := range p.FirstValues {
		if p.FirstValues[i].ModuleID == moduleID {
			return &p.FirstValues[i]
		}
	}
	return nil
}

// OnlineTrackingFor returns the tracking entry for an online module, or nil.
func (p *OnboardingPlan) OnlineTrackingFor(moduleID string) *OnlineTracking {
	for i := range p.OnlineModules {
		if p.OnlineModules[i].ModuleID == moduleID {
			return &p.OnlineModules[i]
		}
	}
	return nil
}

// Terminal reports whether the plan has reached a terminal status.
func (p *OnboardingPlan) Terminal() bool {
	return p.Status == PlanCompleted || p.Status == PlanCanceled
}
