package planning

import (
	"testing"

	"github.com/beaconcs/beacon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Module {
	return []domain.Module{
		{ID: "platform_basics", Name: "Platform Basics", LiveMinutes: 45, Locked: true},
		{ID: "account_setup", Name: "Account Setup", LiveMinutes: 60, Locked: true},
		{ID: "catalog_import", Name: "Catalog Import", LiveMinutes: 30, OnlineMinutes: 20, AffinityGroup: "commerce"},
		{ID: "checkout", Name: "Checkout", LiveMinutes: 45, OnlineMinutes: 25, AffinityGroup: "commerce", Prerequisites: []string{"catalog_import"}},
		{ID: "payments", Name: "Payments", LiveMinutes: 20, OnlineMinutes: 15, AffinityGroup: "commerce", Prerequisites: []string{"checkout"}},
		{ID: "reporting", Name: "Reporting", LiveMinutes: 60, OnlineMinutes: 30, AffinityGroup: "analytics"},
		{ID: "dashboards", Name: "Dashboards", LiveMinutes: 30, OnlineMinutes: 20, AffinityGroup: "analytics", Prerequisites: []string{"reporting"}},
		{ID: "automations", Name: "Automations", LiveMinutes: 40, OnlineMinutes: 20},
		{ID: "integrations", Name: "Integrations", LiveMinutes: 50, OnlineMinutes: 25},
		{ID: "notifications", Name: "Notifications", LiveMinutes: 25, OnlineMinutes: 15},
		{ID: "mobile_app", Name: "Mobile App", LiveMinutes: 35, OnlineMinutes: 20},
	}
}

func testGroupOrder() []string {
	return []string{"commerce", "analytics"}
}

func testRules() RuleSet {
	return RuleSet{
		"catalog_import": func(a domain.Answers) bool { return a["sells_products"] == true },
		"checkout":       func(a domain.Answers) bool { return a["sells_products"] == true },
		"payments":       func(a domain.Answers) bool { return a["sells_products"] == true },
		"reporting":      func(a domain.Answers) bool { return a["team_size"] == "large" },
		"dashboards":     func(a domain.Answers) bool { return a["team_size"] == "large" },
		"automations":    func(a domain.Answers) bool { return a["wants_automation"] == true },
		"integrations":   func(a domain.Answers) bool { return a["has_external_tools"] == true },
	}
}

func TestClassify_LockedModulesAlwaysLive(t *testing.T) {
	answerSets := []domain.Answers{
		{},
		{"sells_products": false, "team_size": "small"},
		{"sells_products": true, "team_size": "large", "wants_automation": true},
	}

	for _, answers := range answerSets {
		cls := Classify(testCatalog(), testRules(), answers)
		assert.Equal(t, domain.ModeLive, cls["platform_basics"])
		assert.Equal(t, domain.ModeLive, cls["account_setup"])
	}
}

func TestClassify_CoversEveryModuleExactlyOnce(t *testing.T) {
	catalog := testCatalog()
	cls := Classify(catalog, testRules(), domain.Answers{"sells_products": true})

	require.Len(t, cls, len(catalog))
	for _, m := range catalog {
		_, ok := cls[m.ID]
		assert.True(t, ok, "module %s must be classified", m.ID)
	}
}

func TestClassify_PredicateTrueMeansLive(t *testing.T) {
	cls := Classify(testCatalog(), testRules(), domain.Answers{"sells_products": true})

	assert.Equal(t, domain.ModeLive, cls["catalog_import"])
	assert.Equal(t, domain.ModeLive, cls["checkout"])
	assert.Equal(t, domain.ModeLive, cls["payments"])
	assert.Equal(t, domain.ModeOnline, cls["reporting"])
}

func TestClassify_MissingPredicateDefaultsOnline(t *testing.T) {
	// No rule exists for notifications or mobile_app.
	cls := Classify(testCatalog(), testRules(), domain.Answers{
		"sells_products": true, "team_size": "large", "wants_automation": true, "has_external_tools": true,
	})

	assert.Equal(t, domain.ModeOnline, cls["notifications"])
	assert.Equal(t, domain.ModeOnline, cls["mobile_app"])
}

func TestClassify_DeterministicAndIdempotent(t *testing.T) {
	answers := domain.Answers{"sells_products": true, "team_size": "large"}

	first := Classify(testCatalog(), testRules(), answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(testCatalog(), testRules(), answers))
	}
}

func TestClassify_EmptyRuleSetOnlyLockedLive(t *testing.T) {
	cls := Classify(testCatalog(), RuleSet{}, domain.Answers{"sells_products": true})

	for id, mode := range cls {
		if id == "platform_basics" || id == "account_setup" {
			assert.Equal(t, domain.ModeLive, mode)
		} else {
			assert.Equal(t, domain.ModeOnline, mode, "module %s", id)
		}
	}
}
