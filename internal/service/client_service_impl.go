package service

import (
	"context"
	"errors"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients repository.ClientRepo
}

func NewClientService(clients repository.ClientRepo) ClientService {
	return &clientService{clients: clients}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	if err := c.ValidateAccountCode(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = domain.ClientOnboarding
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.clients.Create(ctx, c)
}

func (s *clientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Resolve accepts either a client UUID or an account code. Account codes are
// tried first since that is what people type.
func (s *clientService) Resolve(ctx context.Context, ref string) (*domain.Client, error) {
	c, err := s.clients.GetByCode(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.clients.GetByID(ctx, ref)
}

func (s *clientService) List(ctx context.Context, includeChurned bool) ([]*domain.Client, error) {
	return s.clients.List(ctx, includeChurned)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if err := c.ValidateAccountCode(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.clients.Update(ctx, c)
}
