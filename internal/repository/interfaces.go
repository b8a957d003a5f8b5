package repository

import (
	"context"

	"github.com/beaconcs/beacon/internal/domain"
)

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByCode(ctx context.Context, accountCode string) (*domain.Client, error)
	List(ctx context.Context, includeChurned bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}

// PlanRepo reads and writes whole OnboardingPlan aggregates. Put performs a
// compare-and-swap on the plan version; a stale write fails with
// ErrVersionConflict and leaves the stored plan untouched.
type PlanRepo interface {
	Create(ctx context.Context, p *domain.OnboardingPlan) error
	Get(ctx context.Context, id string) (*domain.OnboardingPlan, error)
	GetActiveByClient(ctx context.Context, clientID string) (*domain.OnboardingPlan, error)
	List(ctx context.Context, includeTerminal bool) ([]*domain.OnboardingPlan, error)
	Put(ctx context.Context, p *domain.OnboardingPlan) error
}

type ConversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	List(ctx context.Context, status domain.ConversationStatus, clientID string) ([]*domain.Conversation, error)
	Update(ctx context.Context, c *domain.Conversation) error
}

type AlertRepo interface {
	Create(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	ListByClient(ctx context.Context, clientID string, openOnly bool) ([]*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
}
