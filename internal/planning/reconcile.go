package planning

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/google/uuid"
)

// MinJustificationLen is the minimum rune length for a reclassification
// justification. Enforced here so no caller can bypass it.
const MinJustificationLen = 10

// ReconcileInput carries a single-module reclassification against an
// existing plan, plus the static configuration needed to rebuild it.
type ReconcileInput struct {
	Catalog       []domain.Module
	GroupOrder    []string
	Cadence       CadenceTable
	MaxSessionMin int

	Plan          *domain.OnboardingPlan
	ModuleID      string
	NewMode       domain.DeliveryMode
	Justification string
	Author        string
	Now           time.Time
}

// Reconcile applies the reclassification without losing completed-session
// history. The input plan is never mutated; the returned plan is a fresh
// aggregate carrying the new classification, the appended adjustment record,
// the merged session list, recomputed tracking lists, and recomputed
// progress. All rejections happen before anything is built, so a returned
// error means nothing changed.
func Reconcile(in ReconcileInput) (*contract.ReclassifyResponse, error) {
	var target *domain.Module
	for i := range in.Catalog {
		if in.Catalog[i].ID == in.ModuleID {
			target = &in.Catalog[i]
			break
		}
	}
	if target == nil {
		return nil, &contract.ReclassifyError{
			Code:    contract.ReclassifyErrUnknownModule,
			Message: "module " + in.ModuleID + " is not in the catalog",
		}
	}
	if target.Locked {
		return nil, &contract.ReclassifyError{
			Code:    contract.ReclassifyErrLockedModule,
			Message: "module " + in.ModuleID + " is locked to live delivery",
		}
	}
	if in.Plan.Classification[in.ModuleID] == in.NewMode {
		return nil, &contract.ReclassifyError{
			Code:    contract.ReclassifyErrModeUnchanged,
			Message: "module " + in.ModuleID + " is already " + string(in.NewMode),
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Justification)) < MinJustificationLen {
		return nil, &contract.ReclassifyError{
			Code:    contract.ReclassifyErrJustificationTooShort,
			Message: "justification must be at least 10 characters",
		}
	}

	previous := in.Plan.Classification[in.ModuleID]
	cls := in.Plan.Classification.Clone()
	cls[in.ModuleID] = in.NewMode

	// Modules already delivered in a completed session are settled; their
	// sessions must survive the rebuild untouched.
	settledModules := make(map[string]bool)
	settledBySet := make(map[string]domain.Session)
	for _, s := range in.Plan.Sessions {
		if s.Status != domain.SessionCompleted {
			continue
		}
		for _, id := range s.ModuleIDs {
			settledModules[id] = true
		}
		settledBySet[moduleSetKey(s.ModuleIDs)] = s
	}

	built := BuildSessions(BuildInput{
		Catalog:        in.Catalog,
		GroupOrder:     in.GroupOrder,
		Classification: cls,
		MaxSessionMin:  in.MaxSessionMin,
	})
	scheduled, err := ScheduleSessions(built, in.Plan.StartDate, in.Plan.Urgency, in.Cadence)
	if err != nil {
		return nil, err
	}

	// Merge: a candidate whose modules are all settled is replaced by the
	// matching completed session so its execution date, status and notes
	// survive. Each settled session is consumed at most once; the candidate's
	// number is kept so the sequence stays contiguous.
	preserved := 0
	merged := make([]domain.Session, 0, len(scheduled))
	for _, cand := range scheduled {
		if allSettled(cand.ModuleIDs, settledModules) {
			key := moduleSetKey(cand.ModuleIDs)
			if orig, ok := settledBySet[key]; ok {
				delete(settledBySet, key)
				orig.Number = cand.Number
				merged = append(merged, orig)
				preserved++
				continue
			}
		}
		merged = append(merged, cand)
	}

	online := RecomputeOnlineTracking(in.Catalog, cls, in.Plan.OnlineModules)
	firstValues := RecomputeFirstValues(in.Catalog, cls, in.Plan.FirstValues)

	adjustments := make([]domain.Adjustment, len(in.Plan.Adjustments), len(in.Plan.Adjustments)+1)
	copy(adjustments, in.Plan.Adjustments)
	adjustments = append(adjustments, domain.Adjustment{
		ID:            uuid.New().String(),
		ModuleID:      in.ModuleID,
		PreviousMode:  previous,
		NewMode:       in.NewMode,
		Justification: in.Justification,
		Author:        in.Author,
		CreatedAt:     in.Now,
	})

	updated := *in.Plan
	updated.Classification = cls
	updated.Sessions = merged
	updated.OnlineModules = online
	updated.FirstValues = firstValues
	updated.Adjustments = adjustments
	updated.UpdatedAt = in.Now

	prog := ComputeProgress(&updated)
	updated.ProgressPct = prog.Pct
	updated.HandoffEligible = prog.HandoffEligible

	return &contract.ReclassifyResponse{
		Plan:             &updated,
		PreservedCount:   preserved,
		RegeneratedCount: len(merged) - preserved,
	}, nil
}

// RecomputeOnlineTracking keeps the prior tutorial flag for modules still
// online, starts fresh entries for newly online modules, and drops modules
// no longer online. Catalog order keeps the list stable.
func RecomputeOnlineTracking(catalog []domain.Module, cls domain.Classification, prior []domain.OnlineTracking) []domain.OnlineTracking {
	byModule := make(map[string]domain.OnlineTracking, len(prior))
	for _, ot := range prior {
		byModule[ot.ModuleID] = ot
	}
	var out []domain.OnlineTracking
	for _, m := range catalog {
		if cls[m.ID] != domain.ModeOnline {
			continue
		}
		if ot, ok := byModule[m.ID]; ok {
			out = append(out, ot)
			continue
		}
		out = append(out, domain.OnlineTracking{ModuleID: m.ID})
	}
	return out
}

// RecomputeFirstValues mirrors RecomputeOnlineTracking for live modules.
func RecomputeFirstValues(catalog []domain.Module, cls domain.Classification, prior []domain.FirstValueTracking) []domain.FirstValueTracking {
	byModule := make(map[string]domain.FirstValueTracking, len(prior))
	for _, fv := range prior {
		byModule[fv.ModuleID] = fv
	}
	var out []domain.FirstValueTracking
	for _, m := range catalog {
		if cls[m.ID] != domain.ModeLive {
			continue
		}
		if fv, ok := byModule[m.ID]; ok {
			out = append(out, fv)
			continue
		}
		out = append(out, domain.FirstValueTracking{ModuleID: m.ID})
	}
	return out
}

func allSettled(ids []string, settled map[string]bool) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !settled[id] {
			return false
		}
	}
	return true
}

// moduleSetKey builds an order-insensitive identity key for a session's
// module set.
func moduleSetKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
