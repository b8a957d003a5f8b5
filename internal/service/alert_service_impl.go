package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/google/uuid"
)

type alertService struct {
	alerts  repository.AlertRepo
	clients repository.ClientRepo
}

func NewAlertService(alerts repository.AlertRepo, clients repository.ClientRepo) AlertService {
	return &alertService{alerts: alerts, clients: clients}
}

func (s *alertService) Record(ctx context.Context, a *domain.Alert) error {
	if a.Kind == "" {
		return fmt.Errorf("alert kind is required")
	}
	if _, err := s.clients.GetByID(ctx, a.ClientID); err != nil {
		return fmt.Errorf("resolving alert client: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Severity == "" {
		a.Severity = domain.PriorityNormal
	}
	a.Status = domain.AlertOpen
	a.CreatedAt = time.Now().UTC()
	return s.alerts.Create(ctx, a)
}

func (s *alertService) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	return s.alerts.GetByID(ctx, id)
}

func (s *alertService) ListByClient(ctx context.Context, clientID string, openOnly bool) ([]*domain.Alert, error) {
	return s.alerts.ListByClient(ctx, clientID, openOnly)
}

func (s *alertService) Acknowledge(ctx context.Context, id string) (*domain.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == domain.AlertResolved {
		return nil, fmt.Errorf("alert %s is already resolved", id)
	}
	now := time.Now().UTC()
	alert.Status = domain.AlertAcknowledged
	alert.AckedAt = &now
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *alertService) Resolve(ctx context.Context, id string) (*domain.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == domain.AlertResolved {
		return alert, nil
	}
	now := time.Now().UTC()
	alert.Status = domain.AlertResolved
	alert.ResolvedAt = &now
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}
