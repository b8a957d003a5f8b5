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

func TestClientRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)
	ctx := context.Background()

	client := testutil.NewTestClient("Acme Retail", testutil.WithAccountCode("ACME01"))
	require.NoError(t, repo.Create(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Retail", fetched.Name)
	assert.Equal(t, "ACME01", fetched.AccountCode)
	assert.Equal(t, domain.ClientOnboarding, fetched.Status)
}

func TestClientRepo_GetByCode(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)
	ctx := context.Background()

	client := testutil.NewTestClient("Beta Labs", testutil.WithAccountCode("BETA22"))
	require.NoError(t, repo.Create(ctx, client))

	fetched, err := repo.GetByCode(ctx, "BETA22")
	require.NoError(t, err)
	assert.Equal(t, client.ID, fetched.ID)

	_, err = repo.GetByCode(ctx, "NONE99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepo_Create_DuplicateCode(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("First", testutil.WithAccountCode("DUP01"))))
	err := repo.Create(ctx, testutil.NewTestClient("Second", testutil.WithAccountCode("DUP01")))
	assert.Error(t, err)
}

func TestClientRepo_List_ExcludesChurned(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Alive")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Also Alive", testutil.WithClientStatus(domain.ClientActive))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Gone", testutil.WithClientStatus(domain.ClientChurned))))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClientRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)
	ctx := context.Background()

	client := testutil.NewTestClient("Gamma Corp")
	require.NoError(t, repo.Create(ctx, client))

	client.Status = domain.ClientActive
	client.Owner = "jordan"
	client.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Update(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientActive, fetched.Status)
	assert.Equal(t, "jordan", fetched.Owner)
}

func TestClientRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(database)

	ghost := testutil.NewTestClient("Ghost")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}
