package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStoredPlan builds a small but fully populated aggregate. Timestamps are
// truncated to the second so RFC3339 round-trips compare equal.
func newStoredPlan(clientID string) *domain.OnboardingPlan {
	now := time.Now().UTC().Truncate(time.Second)
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sent := now.Add(-time.Hour)
	return &domain.OnboardingPlan{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Classification: domain.Classification{
			"platform_basics": domain.ModeLive,
			"catalog_import":  domain.ModeLive,
			"reporting":       domain.ModeOnline,
		},
		Sessions: []domain.Session{
			{
				ID:            uuid.New().String(),
				Number:        1,
				ModuleIDs:     []string{"platform_basics"},
				TotalMinutes:  45,
				SuggestedDate: start,
				Status:        domain.SessionScheduled,
			},
			{
				ID:            uuid.New().String(),
				Number:        2,
				ModuleIDs:     []string{"catalog_import"},
				TotalMinutes:  30,
				SuggestedDate: start.AddDate(0, 0, 7),
				Status:        domain.SessionScheduled,
				Notes:         "bring sample data",
			},
		},
		OnlineModules: []domain.OnlineTracking{
			{ModuleID: "reporting", TutorialSent: true, SentAt: &sent},
		},
		FirstValues: []domain.FirstValueTracking{
			{ModuleID: "platform_basics", Achieved: false},
			{ModuleID: "catalog_import", Achieved: true, AchievedAt: &sent, Comment: "imported 40 SKUs"},
		},
		Adjustments: nil,
		Status:      domain.PlanInProgress,
		ProgressPct: 10,
		StartDate:   start,
		Urgency:     domain.UrgencyNormal,
		Version:     1,
		CreatedBy:   "ana",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func seedClient(t *testing.T, repo *SQLiteClientRepo) *domain.Client {
	t.Helper()
	client := testutil.NewTestClient("Roundtrip Co")
	require.NoError(t, repo.Create(context.Background(), client))
	return client
}

func TestPlanRepo_CreateAndGet_Roundtrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	plan := newStoredPlan(client.ID)
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Classification, fetched.Classification)
	assert.Equal(t, plan.Sessions, fetched.Sessions)
	assert.Equal(t, plan.OnlineModules, fetched.OnlineModules)
	assert.Equal(t, plan.FirstValues, fetched.FirstValues)
	assert.Equal(t, plan.Status, fetched.Status)
	assert.Equal(t, plan.StartDate, fetched.StartDate)
	assert.Equal(t, 1, fetched.Version)
	assert.Equal(t, "ana", fetched.CreatedBy)
}

func TestPlanRepo_Get_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	_, err := repo.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_GetActiveByClient(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	done := newStoredPlan(client.ID)
	done.Status = domain.PlanCanceled
	require.NoError(t, repo.Create(ctx, done))

	active := newStoredPlan(client.ID)
	require.NoError(t, repo.Create(ctx, active))

	fetched, err := repo.GetActiveByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, fetched.ID)

	_, err = repo.GetActiveByClient(ctx, "other-client")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_List_FiltersTerminal(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	active := newStoredPlan(client.ID)
	canceled := newStoredPlan(client.ID)
	canceled.Status = domain.PlanCanceled
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, canceled))

	open, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlanRepo_Put_IncrementsVersion(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	plan := newStoredPlan(client.ID)
	require.NoError(t, repo.Create(ctx, plan))

	exec := time.Now().UTC().Truncate(time.Second)
	plan.Sessions[0].Status = domain.SessionCompleted
	plan.Sessions[0].ExecutionDate = &exec
	plan.ProgressPct = 40
	plan.UpdatedAt = exec
	require.NoError(t, repo.Put(ctx, plan))
	assert.Equal(t, 2, plan.Version)

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Version)
	assert.Equal(t, domain.SessionCompleted, fetched.Sessions[0].Status)
	require.NotNil(t, fetched.Sessions[0].ExecutionDate)
	assert.Equal(t, 40, fetched.ProgressPct)
}

func TestPlanRepo_Put_StaleVersionConflicts(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	plan := newStoredPlan(client.ID)
	require.NoError(t, repo.Create(ctx, plan))

	// Two readers load version 1; the first write wins.
	first, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	second, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)

	first.ProgressPct = 50
	require.NoError(t, repo.Put(ctx, first))

	second.ProgressPct = 75
	err = repo.Put(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionConflict))

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, fetched.ProgressPct)
	assert.Equal(t, 2, fetched.Version)
}

func TestPlanRepo_Put_MissingPlan(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	plan := newStoredPlan("no-such-client")
	err := repo.Put(context.Background(), plan)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_Put_AdjustmentsAreAppendOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(database)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	client := seedClient(t, clients)
	plan := newStoredPlan(client.ID)
	require.NoError(t, repo.Create(ctx, plan))

	now := time.Now().UTC().Truncate(time.Second)
	adj := domain.Adjustment{
		ID:            uuid.New().String(),
		ModuleID:      "reporting",
		PreviousMode:  domain.ModeOnline,
		NewMode:       domain.ModeLive,
		Justification: "client requested hands-on walkthrough",
		Author:        "ana",
		CreatedAt:     now,
	}
	plan.Adjustments = append(plan.Adjustments, adj)
	require.NoError(t, repo.Put(ctx, plan))

	// A later write that still carries the old record must not duplicate it.
	plan.Adjustments = append(plan.Adjustments, domain.Adjustment{
		ID:            uuid.New().String(),
		ModuleID:      "catalog_import",
		PreviousMode:  domain.ModeLive,
		NewMode:       domain.ModeOnline,
		Justification: "team prefers self-paced material",
		Author:        "ana",
		CreatedAt:     now.Add(time.Minute),
	})
	require.NoError(t, repo.Put(ctx, plan))

	fetched, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Adjustments, 2)
	assert.Equal(t, adj, fetched.Adjustments[0])
	assert.Equal(t, "catalog_import", fetched.Adjustments[1].ModuleID)
}
