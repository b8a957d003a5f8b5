package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/google/uuid"
)

type triageService struct {
	conversations repository.ConversationRepo
	clients       repository.ClientRepo
}

func NewTriageService(conversations repository.ConversationRepo, clients repository.ClientRepo) TriageService {
	return &triageService{conversations: conversations, clients: clients}
}

func (s *triageService) Log(ctx context.Context, c *domain.Conversation) error {
	if c.Subject == "" {
		return fmt.Errorf("conversation subject is required")
	}
	if _, err := s.clients.GetByID(ctx, c.ClientID); err != nil {
		return fmt.Errorf("resolving conversation client: %w", err)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Priority == "" {
		c.Priority = domain.PriorityNormal
	}
	if c.Status == "" {
		c.Status = domain.ConversationNew
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.conversations.Create(ctx, c)
}

func (s *triageService) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.conversations.GetByID(ctx, id)
}

func (s *triageService) Queue(ctx context.Context, status domain.ConversationStatus, clientID string) ([]*domain.Conversation, error) {
	return s.conversations.List(ctx, status, clientID)
}

// Triage assigns a priority and owner and moves the conversation out of the
// new state.
func (s *triageService) Triage(ctx context.Context, id string, priority domain.Priority, assignee string) (*domain.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if priority != "" {
		conv.Priority = priority
	}
	if assignee != "" {
		conv.Assignee = assignee
	}
	if conv.Status == domain.ConversationNew {
		conv.Status = domain.ConversationTriaged
	}
	conv.UpdatedAt = time.Now().UTC()
	if err := s.conversations.Update(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *triageService) SetStatus(ctx context.Context, id string, status domain.ConversationStatus) (*domain.Conversation, error) {
	if !domain.ValidConversationStatuses[string(status)] {
		return nil, fmt.Errorf("invalid conversation status %q", status)
	}
	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.Status = status
	conv.UpdatedAt = time.Now().UTC()
	if err := s.conversations.Update(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}
