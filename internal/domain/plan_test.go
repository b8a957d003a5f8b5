package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSessionPlan() *OnboardingPlan {
	return &OnboardingPlan{
		Classification: Classification{"a": ModeLive, "b": ModeOnline},
		Sessions: []Session{
			{ID: "s1", Number: 1, ModuleIDs: []string{"a"}, Status: SessionCompleted},
			{ID: "s2", Number: 2, ModuleIDs: []string{"b"}, Status: SessionScheduled},
		},
		OnlineModules: []OnlineTracking{{ModuleID: "b"}},
		FirstValues:   []FirstValueTracking{{ModuleID: "a"}},
		Status:        PlanInProgress,
	}
}

func TestPlanHelpers(t *testing.T) {
	p := twoSessionPlan()

	assert.Equal(t, 1, p.CompletedSessions())

	sess := p.SessionByID("s2")
	require.NotNil(t, sess)
	assert.Equal(t, 2, sess.Number)
	assert.Nil(t, p.SessionByID("nope"))

	assert.NotNil(t, p.FirstValueFor("a"))
	assert.Nil(t, p.FirstValueFor("b"))
	assert.NotNil(t, p.OnlineTrackingFor("b"))
	assert.Nil(t, p.OnlineTrackingFor("a"))
}

func TestPlanTerminal(t *testing.T) {
	p := twoSessionPlan()
	assert.False(t, p.Terminal())

	p.Status = PlanCompleted
	assert.True(t, p.Terminal())
	p.Status = PlanCanceled
	assert.True(t, p.Terminal())
}

func TestClassificationClone(t *testing.T) {
	cls := Classification{"a": ModeLive}
	clone := cls.Clone()
	clone["a"] = ModeOnline

	assert.Equal(t, ModeLive, cls["a"])
	assert.Equal(t, ModeOnline, clone["a"])
}
