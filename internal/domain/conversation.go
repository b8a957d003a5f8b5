package domain

import "time"

// Conversation is one support thread queued for triage.
type Conversation struct {
	ID        string
	ClientID  string
	Channel   string // email, chat, phone
	Subject   string
	Priority  Priority
	Status    ConversationStatus
	Assignee  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Alert is a client health notification raised by an external monitor.
// The console only stores and acknowledges alerts; generation is external.
type Alert struct {
	ID         string
	ClientID   string
	Kind       string
	Message    string
	Severity   Priority
	Status     AlertStatus
	CreatedAt  time.Time
	AckedAt    *time.Time
	ResolvedAt *time.Time
}
