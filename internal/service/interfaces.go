package service

import (
	"context"

	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/domain"
)

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Resolve(ctx context.Context, ref string) (*domain.Client, error)
	List(ctx context.Context, includeChurned bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}

type PlanService interface {
	CreatePlan(ctx context.Context, req contract.CreatePlanRequest) (*domain.OnboardingPlan, error)
	Get(ctx context.Context, id string) (*domain.OnboardingPlan, error)
	ActiveForClient(ctx context.Context, clientID string) (*domain.OnboardingPlan, error)
	GetStatus(ctx context.Context, planID string) (*contract.PlanStatusView, error)
	List(ctx context.Context, includeTerminal bool) ([]*domain.OnboardingPlan, error)
	CompleteSession(ctx context.Context, req contract.CompleteSessionRequest) (*domain.OnboardingPlan, error)
	MarkFirstValue(ctx context.Context, req contract.FirstValueRequest) (*domain.OnboardingPlan, error)
	MarkTutorialSent(ctx context.Context, planID, moduleID string) (*domain.OnboardingPlan, error)
	Reclassify(ctx context.Context, req contract.ReclassifyRequest) (*contract.ReclassifyResponse, error)
	ExecuteHandoff(ctx context.Context, planID string) (*domain.OnboardingPlan, error)
	Cancel(ctx context.Context, planID string) (*domain.OnboardingPlan, error)
}

type TriageService interface {
	Log(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	Queue(ctx context.Context, status domain.ConversationStatus, clientID string) ([]*domain.Conversation, error)
	Triage(ctx context.Context, id string, priority domain.Priority, assignee string) (*domain.Conversation, error)
	SetStatus(ctx context.Context, id string, status domain.ConversationStatus) (*domain.Conversation, error)
}

type AlertService interface {
	Record(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	ListByClient(ctx context.Context, clientID string, openOnly bool) ([]*domain.Alert, error)
	Acknowledge(ctx context.Context, id string) (*domain.Alert, error)
	Resolve(ctx context.Context, id string) (*domain.Alert, error)
}
