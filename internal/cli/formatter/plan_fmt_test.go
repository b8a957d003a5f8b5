package formatter

import (
	"testing"
	"time"

	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testStatusView() *contract.PlanStatusView {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	plan := &domain.OnboardingPlan{
		ID:       "plan-1",
		ClientID: "client-1",
		Classification: domain.Classification{
			"platform_basics": domain.ModeLive,
			"reporting":       domain.ModeOnline,
		},
		Sessions: []domain.Session{
			{ID: "s1", Number: 1, ModuleIDs: []string{"platform_basics"}, TotalMinutes: 45, SuggestedDate: start, Status: domain.SessionCompleted},
		},
		OnlineModules: []domain.OnlineTracking{{ModuleID: "reporting"}},
		FirstValues:   []domain.FirstValueTracking{{ModuleID: "platform_basics", Achieved: true, Comment: "signed in solo"}},
		Adjustments: []domain.Adjustment{{
			ModuleID:      "reporting",
			PreviousMode:  domain.ModeLive,
			NewMode:       domain.ModeOnline,
			Justification: "team prefers the recorded course",
			Author:        "ana",
			CreatedAt:     start,
		}},
		Status:      domain.PlanInProgress,
		ProgressPct: 63,
		StartDate:   start,
		Urgency:     domain.UrgencyNormal,
	}
	return &contract.PlanStatusView{
		Plan:   plan,
		Client: &domain.Client{ID: "client-1", AccountCode: "ACME01", Name: "Acme Retail"},
	}
}

func TestFormatPlanStatus(t *testing.T) {
	names := map[string]string{"platform_basics": "Platform Basics", "reporting": "Reporting"}
	out := FormatPlanStatus(testStatusView(), names)

	assert.Contains(t, out, "Acme Retail")
	assert.Contains(t, out, "ACME01")
	assert.Contains(t, out, "Platform Basics")
	assert.Contains(t, out, "Reporting")
	assert.Contains(t, out, "signed in solo")
	assert.Contains(t, out, "team prefers the recorded course")
	assert.Contains(t, out, "63%")
}

func TestFormatPlanStatus_UnknownModuleFallsBackToID(t *testing.T) {
	out := FormatPlanStatus(testStatusView(), nil)
	assert.Contains(t, out, "platform_basics")
}

func TestFormatPlanList(t *testing.T) {
	view := testStatusView()
	out := FormatPlanList([]*domain.OnboardingPlan{view.Plan}, map[string]string{"client-1": "Acme Retail"})
	assert.Contains(t, out, "Acme Retail")
	assert.Contains(t, out, "1/1")
}
