package planning

import "github.com/beaconcs/beacon/internal/domain"

// Predicate decides live delivery for one module from the questionnaire
// answers. Predicates must be pure: same answers, same result.
type Predicate func(domain.Answers) bool

// RuleSet maps non-locked module IDs to their classification predicate.
// It is passed explicitly so alternate rule sets are testable in isolation;
// there is no package-level rule table.
type RuleSet map[string]Predicate

// Classify produces the delivery mode for every catalog module exactly once.
// Locked modules are always live. Non-locked modules are live when their
// predicate returns true; a missing predicate or a false result means online.
// The function is total and deterministic; there are no error conditions.
func Classify(catalog []domain.Module, rules RuleSet, answers domain.Answers) domain.Classification {
	cls := make(domain.Classification, len(catalog))
	for _, m := range catalog {
		if m.Locked {
			cls[m.ID] = domain.ModeLive
			continue
		}
		if pred, ok := rules[m.ID]; ok && pred(answers) {
			cls[m.ID] = domain.ModeLive
			continue
		}
		cls[m.ID] = domain.ModeOnline
	}
	return cls
}
