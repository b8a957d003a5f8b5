package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/catalog"
	"github.com/beaconcs/beacon/internal/contract"
	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/domain"
	"github.com/beaconcs/beacon/internal/planning"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	catalog  *catalog.Catalog
	plans    repository.PlanRepo
	clients  repository.ClientRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(
	cat *catalog.Catalog,
	plans repository.PlanRepo,
	clients repository.ClientRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		catalog:  cat,
		plans:    plans,
		clients:  clients,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) CreatePlan(ctx context.Context, req contract.CreatePlanRequest) (plan *domain.OnboardingPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"client_id": req.ClientID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		txPlans := repository.NewSQLitePlanRepo(tx)

		if _, err := txClients.GetByID(ctx, req.ClientID); err != nil {
			return err
		}

		_, err := txPlans.GetActiveByClient(ctx, req.ClientID)
		if err == nil {
			return &contract.PlanError{
				Code:    contract.PlanErrActivePlanExists,
				Message: "client already has a plan in progress",
			}
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		cls := planning.Classify(s.catalog.Modules, s.catalog.Rules(), req.Answers)
		built := planning.BuildSessions(planning.BuildInput{
			Catalog:        s.catalog.Modules,
			GroupOrder:     s.catalog.GroupOrder,
			Classification: cls,
			MaxSessionMin:  s.catalog.MaxSessionMin,
		})
		scheduled, err := planning.ScheduleSessions(built, req.StartDate, urgency, s.catalog.Cadence)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		plan = &domain.OnboardingPlan{
			ID:             uuid.New().String(),
			ClientID:       req.ClientID,
			Classification: cls,
			Sessions:       scheduled,
			OnlineModules:  planning.RecomputeOnlineTracking(s.catalog.Modules, cls, nil),
			FirstValues:    planning.RecomputeFirstValues(s.catalog.Modules, cls, nil),
			Status:         domain.PlanInProgress,
			StartDate:      req.StartDate,
			Urgency:        urgency,
			Version:        1,
			CreatedBy:      req.Author,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		prog := planning.ComputeProgress(plan)
		plan.ProgressPct = prog.Pct
		plan.HandoffEligible = prog.HandoffEligible

		fields["plan_id"] = plan.ID
		fields["session_count"] = len(plan.Sessions)
		return txPlans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Get(ctx context.Context, id string) (*domain.OnboardingPlan, error) {
	return s.plans.Get(ctx, id)
}

func (s *planService) ActiveForClient(ctx context.Context, clientID string) (*domain.OnboardingPlan, error) {
	return s.plans.GetActiveByClient(ctx, clientID)
}

func (s *planService) GetStatus(ctx context.Context, planID string) (*contract.PlanStatusView, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, plan.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading plan client: %w", err)
	}

	view := &contract.PlanStatusView{
		Plan:             plan,
		Client:           client,
		TotalSessions:    len(plan.Sessions),
		TotalLiveModules: len(plan.FirstValues),
		TotalOnline:      len(plan.OnlineModules),
	}
	view.CompletedSessions = plan.CompletedSessions()
	for _, fv := range plan.FirstValues {
		if fv.Achieved {
			view.AchievedValues++
		}
	}
	for _, ot := range plan.OnlineModules {
		if ot.TutorialSent {
			view.TutorialsSent++
		}
	}
	return view, nil
}

func (s *planService) List(ctx context.Context, includeTerminal bool) ([]*domain.OnboardingPlan, error) {
	return s.plans.List(ctx, includeTerminal)
}

func (s *planService) CompleteSession(ctx context.Context, req contract.CompleteSessionRequest) (*domain.OnboardingPlan, error) {
	return s.mutate(ctx, req.PlanID, func(plan *domain.OnboardingPlan) error {
		sess := plan.SessionByID(req.SessionID)
		if sess == nil {
			return &contract.PlanError{
				Code:    contract.PlanErrUnknownSession,
				Message: "session " + req.SessionID + " is not part of this plan",
			}
		}
		if sess.Status == domain.SessionCompleted {
			return &contract.PlanError{
				Code:    contract.PlanErrSessionCompleted,
				Message: fmt.Sprintf("session %d was already completed", sess.Number),
			}
		}
		executed := req.ExecutedAt
		if executed.IsZero() {
			executed = time.Now().UTC()
		}
		sess.Status = domain.SessionCompleted
		sess.ExecutionDate = &executed
		if req.Notes != "" {
			sess.Notes = req.Notes
		}
		return nil
	})
}

func (s *planService) MarkFirstValue(ctx context.Context, req contract.FirstValueRequest) (*domain.OnboardingPlan, error) {
	return s.mutate(ctx, req.PlanID, func(plan *domain.OnboardingPlan) error {
		if plan.Classification[req.ModuleID] != domain.ModeLive {
			return &contract.PlanError{
				Code:    contract.PlanErrWrongDeliveryMode,
				Message: "module " + req.ModuleID + " is not live-classified in this plan",
			}
		}
		fv := plan.FirstValueFor(req.ModuleID)
		if fv == nil {
			return &contract.PlanError{
				Code:    contract.PlanErrWrongDeliveryMode,
				Message: "module " + req.ModuleID + " has no first-value tracking entry",
			}
		}
		achieved := req.AchievedAt
		if achieved.IsZero() {
			achieved = time.Now().UTC()
		}
		fv.Achieved = true
		fv.AchievedAt = &achieved
		fv.Comment = req.Comment
		return nil
	})
}

func (s *planService) MarkTutorialSent(ctx context.Context, planID, moduleID string) (*domain.OnboardingPlan, error) {
	return s.mutate(ctx, planID, func(plan *domain.OnboardingPlan) error {
		if plan.Classification[moduleID] != domain.ModeOnline {
			return &contract.PlanError{
				Code:    contract.PlanErrWrongDeliveryMode,
				Message: "module " + moduleID + " is not online-classified in this plan",
			}
		}
		ot := plan.OnlineTrackingFor(moduleID)
		if ot == nil {
			return &contract.PlanError{
				Code:    contract.PlanErrWrongDeliveryMode,
				Message: "module " + moduleID + " has no tutorial tracking entry",
			}
		}
		now := time.Now().UTC()
		ot.TutorialSent = true
		ot.SentAt = &now
		return nil
	})
}

func (s *planService) Reclassify(ctx context.Context, req contract.ReclassifyRequest) (resp *contract.ReclassifyResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"plan_id":   req.PlanID,
		"module_id": req.ModuleID,
		"new_mode":  string(req.NewMode),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reclassify-module",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		plan, err := txPlans.Get(ctx, req.PlanID)
		if err != nil {
			return err
		}
		if plan.Terminal() {
			return &contract.PlanError{
				Code:    contract.PlanErrTerminal,
				Message: "plan is " + string(plan.Status) + " and can no longer change",
			}
		}

		resp, err = planning.Reconcile(planning.ReconcileInput{
			Catalog:       s.catalog.Modules,
			GroupOrder:    s.catalog.GroupOrder,
			Cadence:       s.catalog.Cadence,
			MaxSessionMin: s.catalog.MaxSessionMin,
			Plan:          plan,
			ModuleID:      req.ModuleID,
			NewMode:       req.NewMode,
			Justification: req.Justification,
			Author:        req.Author,
			Now:           now,
		})
		if err != nil {
			return err
		}
		fields["preserved"] = resp.PreservedCount
		fields["regenerated"] = resp.RegeneratedCount
		return txPlans.Put(ctx, resp.Plan)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ExecuteHandoff closes an eligible plan and promotes the client to active.
func (s *planService) ExecuteHandoff(ctx context.Context, planID string) (plan *domain.OnboardingPlan, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "execute-handoff",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"plan_id": planID},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txClients := repository.NewSQLiteClientRepo(tx)

		p, err := txPlans.Get(ctx, planID)
		if err != nil {
			return err
		}
		if p.Terminal() {
			return &contract.PlanError{
				Code:    contract.PlanErrTerminal,
				Message: "plan is " + string(p.Status) + " and can no longer change",
			}
		}
		if !p.HandoffEligible {
			return &contract.PlanError{
				Code:    contract.PlanErrNotEligible,
				Message: "handoff requires every session completed, every first value achieved, and every tutorial sent",
			}
		}

		now := time.Now().UTC()
		p.Status = domain.PlanCompleted
		p.UpdatedAt = now
		if err := txPlans.Put(ctx, p); err != nil {
			return err
		}

		client, err := txClients.GetByID(ctx, p.ClientID)
		if err != nil {
			return err
		}
		client.Status = domain.ClientActive
		client.UpdatedAt = now
		if err := txClients.Update(ctx, client); err != nil {
			return err
		}

		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Cancel(ctx context.Context, planID string) (*domain.OnboardingPlan, error) {
	var plan *domain.OnboardingPlan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		p, err := txPlans.Get(ctx, planID)
		if err != nil {
			return err
		}
		if p.Terminal() {
			return &contract.PlanError{
				Code:    contract.PlanErrTerminal,
				Message: "plan is " + string(p.Status) + " and can no longer change",
			}
		}
		p.Status = domain.PlanCanceled
		p.UpdatedAt = time.Now().UTC()
		if err := txPlans.Put(ctx, p); err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// mutate runs a tracked plan mutation: load, reject terminal plans, apply the
// edit, recompute progress, and write back under the version check.
func (s *planService) mutate(ctx context.Context, planID string, edit func(*domain.OnboardingPlan) error) (*domain.OnboardingPlan, error) {
	var plan *domain.OnboardingPlan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		p, err := txPlans.Get(ctx, planID)
		if err != nil {
			return err
		}
		if p.Terminal() {
			return &contract.PlanError{
				Code:    contract.PlanErrTerminal,
				Message: "plan is " + string(p.Status) + " and can no longer change",
			}
		}
		if err := edit(p); err != nil {
			return err
		}

		prog := planning.ComputeProgress(p)
		p.ProgressPct = prog.Pct
		p.HandoffEligible = prog.HandoffEligible
		p.UpdatedAt = time.Now().UTC()

		if err := txPlans.Put(ctx, p); err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
