package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/catalog"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/google/uuid"
)

var accountCodeCounter atomic.Int64

// Client options
type ClientOption func(*domain.Client)

func WithAccountCode(code string) ClientOption {
	return func(c *domain.Client) {
		c.AccountCode = code
	}
}

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithOwner(owner string) ClientOption {
	return func(c *domain.Client) {
		c.Owner = owner
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:          uuid.New().String(),
		AccountCode: fmt.Sprintf("TST%03d", accountCodeCounter.Add(1)),
		Name:        name,
		Segment:     "mid-market",
		Owner:       "test-csm",
		Status:      domain.ClientOnboarding,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Conversation options
type ConversationOption func(*domain.Conversation)

func WithConversationPriority(p domain.Priority) ConversationOption {
	return func(c *domain.Conversation) {
		c.Priority = p
	}
}

func WithConversationStatus(s domain.ConversationStatus) ConversationOption {
	return func(c *domain.Conversation) {
		c.Status = s
	}
}

func NewTestConversation(clientID, subject string, opts ...ConversationOption) *domain.Conversation {
	now := time.Now().UTC()
	c := &domain.Conversation{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Channel:   "email",
		Subject:   subject,
		Priority:  domain.PriorityNormal,
		Status:    domain.ConversationNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Alert options
type AlertOption func(*domain.Alert)

func WithSeverity(p domain.Priority) AlertOption {
	return func(a *domain.Alert) {
		a.Severity = p
	}
}

func NewTestAlert(clientID, kind string, opts ...AlertOption) *domain.Alert {
	a := &domain.Alert{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Kind:      kind,
		Message:   "synthetic alert",
		Severity:  domain.PriorityNormal,
		Status:    domain.AlertOpen,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

const testCatalogYAML = `
max_session_minutes: 90
affinity_groups: [commerce, analytics]
cadence:
  normal: 1
  high: 2
questions:
  - id: sells_products
    prompt: "Does the client sell products online?"
    type: bool
  - id: team_size
    prompt: "How large is the client team?"
    type: select
    options: [solo, small, large]
modules:
  - id: platform_basics
    name: Platform Basics
    live_minutes: 45
    online_minutes: 30
    locked: true
    first_value: "Client signs in and navigates the console"
  - id: catalog_import
    name: Catalog Import
    live_minutes: 30
    online_minutes: 20
    affinity_group: commerce
    rule:
      question: sells_products
      equals: true
    first_value: "First product imported"
  - id: checkout
    name: Checkout Setup
    live_minutes: 45
    online_minutes: 25
    affinity_group: commerce
    prerequisites: [catalog_import]
    rule:
      question: sells_products
      equals: true
  - id: reporting
    name: Reporting
    live_minutes: 60
    online_minutes: 40
    affinity_group: analytics
    rule:
      question: team_size
      in: [small, large]
    first_value: "First scheduled report delivered"
  - id: notifications
    name: Notifications
    live_minutes: 25
    online_minutes: 15
`

// NewTestCatalog compiles a small fixed catalog: one locked module, two
// commerce modules with a prerequisite chain, one analytics module, and one
// ungrouped module with no rule (defaults to online).
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("failed to compile test catalog: %v", err)
	}
	return cat
}

// AllLiveAnswers answers the test catalog questionnaire so that every ruled
// module classifies live.
func AllLiveAnswers() domain.Answers {
	return domain.Answers{
		"sells_products": true,
		"team_size":      "small",
	}
}
