package repository

import (
	"context"
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	conv := testutil.NewTestConversation(client.ID, "Cannot import catalog")
	require.NoError(t, repo.Create(ctx, conv))

	fetched, err := repo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cannot import catalog", fetched.Subject)
	assert.Equal(t, domain.ConversationNew, fetched.Status)
	assert.Equal(t, domain.PriorityNormal, fetched.Priority)

	_, err = repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationRepo_List_OrdersByPriority(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	low := testutil.NewTestConversation(client.ID, "minor question", testutil.WithConversationPriority(domain.PriorityLow))
	high := testutil.NewTestConversation(client.ID, "site is down", testutil.WithConversationPriority(domain.PriorityHigh))
	normal := testutil.NewTestConversation(client.ID, "billing query")
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))
	require.NoError(t, repo.Create(ctx, normal))

	list, err := repo.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, high.ID, list[0].ID)
	assert.Equal(t, normal.ID, list[1].ID)
	assert.Equal(t, low.ID, list[2].ID)
}

func TestConversationRepo_List_FiltersByStatusAndClient(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()

	clientA := seedClient(t, clients)
	clientB := seedClient(t, clients)
	require.NoError(t, repo.Create(ctx, testutil.NewTestConversation(clientA.ID, "open one")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestConversation(clientA.ID, "done one", testutil.WithConversationStatus(domain.ConversationResolved))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestConversation(clientB.ID, "other client")))

	newOnly, err := repo.List(ctx, domain.ConversationNew, "")
	require.NoError(t, err)
	assert.Len(t, newOnly, 2)

	forA, err := repo.List(ctx, "", clientA.ID)
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	newForA, err := repo.List(ctx, domain.ConversationNew, clientA.ID)
	require.NoError(t, err)
	assert.Len(t, newForA, 1)
}

func TestConversationRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	conv := testutil.NewTestConversation(client.ID, "needs triage")
	require.NoError(t, repo.Create(ctx, conv))

	conv.Status = domain.ConversationTriaged
	conv.Priority = domain.PriorityHigh
	conv.Assignee = "jordan"
	conv.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Update(ctx, conv))

	fetched, err := repo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationTriaged, fetched.Status)
	assert.Equal(t, domain.PriorityHigh, fetched.Priority)
	assert.Equal(t, "jordan", fetched.Assignee)
}
