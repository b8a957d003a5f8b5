package contract

import (
	"time"

	"github.com/beaconcs/beacon/internal/domain"
)

type ReclassifyErrorCode string

const (
	ReclassifyErrUnknownModule         ReclassifyErrorCode = "UNKNOWN_MODULE"
	ReclassifyErrLockedModule          ReclassifyErrorCode = "LOCKED_MODULE"
	ReclassifyErrModeUnchanged         ReclassifyErrorCode = "MODE_UNCHANGED"
	ReclassifyErrJustificationTooShort ReclassifyErrorCode = "JUSTIFICATION_TOO_SHORT"
)

// ReclassifyError is the all-or-nothing rejection of a reclassification.
// When it is returned, no mutation has been applied to the plan.
type ReclassifyError struct {
	Code    ReclassifyErrorCode
	Message string
}

func (e *ReclassifyError) Error() string {
	return string(e.Code) + ": " + e.Message
}

type ReclassifyRequest struct {
	PlanID        string
	ModuleID      string
	NewMode       domain.DeliveryMode
	Justification string
	Author        string
	Now           *time.Time
}

type ReclassifyResponse struct {
	Plan             *domain.OnboardingPlan
	PreservedCount   int // settled sessions carried over unchanged
	RegeneratedCount int // sessions freshly built and scheduled
}
