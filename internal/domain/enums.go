package domain

type DeliveryMode string

const (
	ModeLive   DeliveryMode = "live"
	ModeOnline DeliveryMode = "online"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
)

type PlanStatus string

const (
	PlanInProgress PlanStatus = "in_progress"
	PlanCompleted  PlanStatus = "completed"
	PlanCanceled   PlanStatus = "canceled"
)

type ClientStatus string

const (
	ClientOnboarding ClientStatus = "onboarding"
	ClientActive     ClientStatus = "active"
	ClientChurned    ClientStatus = "churned"
)

type ConversationStatus string

const (
	ConversationNew      ConversationStatus = "new"
	ConversationTriaged  ConversationStatus = "triaged"
	ConversationWaiting  ConversationStatus = "waiting"
	ConversationResolved ConversationStatus = "resolved"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type AlertStatus string

const (
	AlertOpen         AlertStatus = "open"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// ValidDeliveryModes is the canonical set of accepted delivery mode strings.
var ValidDeliveryModes = map[string]bool{
	"live": true, "online": true,
}

// ValidUrgencies is the canonical set of accepted urgency strings.
var ValidUrgencies = map[string]bool{
	"normal": true, "high": true,
}

// ValidConversationStatuses is the canonical set of accepted triage states.
var ValidConversationStatuses = map[string]bool{
	"new": true, "triaged": true, "waiting": true, "resolved": true,
}
