package contract

import (
	"time"

	"github.com/beaconcs/beacon/internal/domain"
)

type PlanErrorCode string

const (
	PlanErrActivePlanExists  PlanErrorCode = "ACTIVE_PLAN_EXISTS"
	PlanErrTerminal          PlanErrorCode = "PLAN_TERMINAL"
	PlanErrSessionCompleted  PlanErrorCode = "SESSION_ALREADY_COMPLETED"
	PlanErrUnknownSession    PlanErrorCode = "UNKNOWN_SESSION"
	PlanErrWrongDeliveryMode PlanErrorCode = "WRONG_DELIVERY_MODE"
	PlanErrNotEligible       PlanErrorCode = "HANDOFF_NOT_ELIGIBLE"
)

// PlanError is a typed rejection of a plan mutation. No partial state is
// written when one is returned.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

type CreatePlanRequest struct {
	ClientID  string
	Answers   domain.Answers
	StartDate time.Time
	Urgency   domain.Urgency
	Author    string
}

type CompleteSessionRequest struct {
	PlanID     string
	SessionID  string
	ExecutedAt time.Time
	Notes      string
}

type FirstValueRequest struct {
	PlanID     string
	ModuleID   string
	AchievedAt time.Time
	Comment    string
}

// PlanStatusView is the read-side summary the CLI renders.
type PlanStatusView struct {
	Plan              *domain.OnboardingPlan
	Client            *domain.Client
	CompletedSessions int
	TotalSessions     int
	AchievedValues    int
	TotalLiveModules  int
	TutorialsSent     int
	TotalOnline       int
}
