package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/domain"
)

// SQLitePlanRepo persists OnboardingPlan aggregates. A plan spans six tables
// (header, classification, sessions, online tracking, first values,
// adjustments) but is always read and written whole; mutating operations must
// run Put inside a transaction-scoped repo so the version check and the child
// rewrites commit together.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.OnboardingPlan) error {
	query := `INSERT INTO plans (id, client_id, status, progress_pct, handoff_eligible, start_date, urgency, version, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ClientID,
		string(p.Status),
		p.ProgressPct,
		boolToInt(p.HandoffEligible),
		p.StartDate.Format(dateLayout),
		string(p.Urgency),
		p.Version,
		p.CreatedBy,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return r.insertChildren(ctx, p)
}

func (r *SQLitePlanRepo) Get(ctx context.Context, id string) (*domain.OnboardingPlan, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLitePlanRepo) GetActiveByClient(ctx context.Context, clientID string) (*domain.OnboardingPlan, error) {
	return r.getWhere(ctx, `client_id = ? AND status = 'in_progress'`, clientID)
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeTerminal bool) ([]*domain.OnboardingPlan, error) {
	query := `SELECT id FROM plans`
	if !includeTerminal {
		query += ` WHERE status = 'in_progress'`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning plan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	plans := make([]*domain.OnboardingPlan, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Put overwrites the stored aggregate if and only if the caller's version
// matches the stored one. On success the stored version is incremented and
// p.Version is bumped to match.
func (r *SQLitePlanRepo) Put(ctx context.Context, p *domain.OnboardingPlan) error {
	query := `UPDATE plans SET status = ?, progress_pct = ?, handoff_eligible = ?, start_date = ?, urgency = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(p.Status),
		p.ProgressPct,
		boolToInt(p.HandoffEligible),
		p.StartDate.Format(dateLayout),
		string(p.Urgency),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
		p.Version,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		var exists int
		row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans WHERE id = ?`, p.ID)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("checking plan existence: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("plan %s: %w", p.ID, ErrNotFound)
		}
		return fmt.Errorf("plan %s: %w", p.ID, ErrVersionConflict)
	}

	for _, table := range []string{"plan_classification", "plan_sessions", "plan_online_tracking", "plan_first_values"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE plan_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := r.insertChildren(ctx, p); err != nil {
		return err
	}

	p.Version++
	return nil
}

// insertChildren writes all dependent rows. Adjustments use INSERT OR IGNORE:
// the log is append-only, existing records are never rewritten.
func (r *SQLitePlanRepo) insertChildren(ctx context.Context, p *domain.OnboardingPlan) error {
	for moduleID, mode := range p.Classification {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_classification (plan_id, module_id, mode) VALUES (?, ?, ?)`,
			p.ID, moduleID, string(mode))
		if err != nil {
			return fmt.Errorf("inserting classification for %s: %w", moduleID, err)
		}
	}

	for _, s := range p.Sessions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_sessions (id, plan_id, seq, module_ids, total_minutes, suggested_date, execution_date, status, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID,
			p.ID,
			s.Number,
			joinModuleIDs(s.ModuleIDs),
			s.TotalMinutes,
			s.SuggestedDate.Format(dateLayout),
			nullableTimeToString(s.ExecutionDate, time.RFC3339),
			string(s.Status),
			s.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting session %d: %w", s.Number, err)
		}
	}

	for i, ot := range p.OnlineModules {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_online_tracking (plan_id, module_id, tutorial_sent, sent_at, position) VALUES (?, ?, ?, ?, ?)`,
			p.ID, ot.ModuleID, boolToInt(ot.TutorialSent), nullableTimeToString(ot.SentAt, time.RFC3339), i)
		if err != nil {
			return fmt.Errorf("inserting online tracking for %s: %w", ot.ModuleID, err)
		}
	}

	for i, fv := range p.FirstValues {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_first_values (plan_id, module_id, achieved, achieved_at, comment, position) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, fv.ModuleID, boolToInt(fv.Achieved), nullableTimeToString(fv.AchievedAt, time.RFC3339), fv.Comment, i)
		if err != nil {
			return fmt.Errorf("inserting first value for %s: %w", fv.ModuleID, err)
		}
	}

	for _, adj := range p.Adjustments {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO plan_adjustments (id, plan_id, module_id, previous_mode, new_mode, justification, author, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			adj.ID, p.ID, adj.ModuleID, string(adj.PreviousMode), string(adj.NewMode), adj.Justification, adj.Author, adj.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting adjustment %s: %w", adj.ID, err)
		}
	}

	return nil
}

func (r *SQLitePlanRepo) getWhere(ctx context.Context, where string, args ...any) (*domain.OnboardingPlan, error) {
	query := `SELECT id, client_id, status, progress_pct, handoff_eligible, start_date, urgency, version, created_by, created_at, updated_at
		FROM plans WHERE ` + where
	row := r.db.QueryRowContext(ctx, query, args...)

	var p domain.OnboardingPlan
	var handoff int
	var startDate, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.ClientID, (*string)(&p.Status), &p.ProgressPct, &handoff, &startDate, (*string)(&p.Urgency), &p.Version, &p.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.HandoffEligible = intToBool(handoff)
	if p.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if err := r.loadChildren(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLitePlanRepo) loadChildren(ctx context.Context, p *domain.OnboardingPlan) error {
	rows, err := r.db.QueryContext(ctx, `SELECT module_id, mode FROM plan_classification WHERE plan_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("loading classification: %w", err)
	}
	defer rows.Close()
	p.Classification = make(domain.Classification)
	for rows.Next() {
		var moduleID, mode string
		if err := rows.Scan(&moduleID, &mode); err != nil {
			return fmt.Errorf("scanning classification row: %w", err)
		}
		p.Classification[moduleID] = domain.DeliveryMode(mode)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating classification: %w", err)
	}

	if err := r.loadSessions(ctx, p); err != nil {
		return err
	}
	if err := r.loadTracking(ctx, p); err != nil {
		return err
	}
	return r.loadAdjustments(ctx, p)
}

func (r *SQLitePlanRepo) loadSessions(ctx context.Context, p *domain.OnboardingPlan) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seq, module_ids, total_minutes, suggested_date, execution_date, status, notes
		FROM plan_sessions WHERE plan_id = ? ORDER BY seq`, p.ID)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Session
		var moduleIDs, suggested string
		var execution sql.NullString
		if err := rows.Scan(&s.ID, &s.Number, &moduleIDs, &s.TotalMinutes, &suggested, &execution, (*string)(&s.Status), &s.Notes); err != nil {
			return fmt.Errorf("scanning session row: %w", err)
		}
		s.ModuleIDs = splitModuleIDs(moduleIDs)
		if s.SuggestedDate, err = time.Parse(dateLayout, suggested); err != nil {
			return fmt.Errorf("parsing suggested_date: %w", err)
		}
		s.ExecutionDate = parseNullableTime(execution, time.RFC3339)
		p.Sessions = append(p.Sessions, s)
	}
	return rows.Err()
}

func (r *SQLitePlanRepo) loadTracking(ctx context.Context, p *domain.OnboardingPlan) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT module_id, tutorial_sent, sent_at FROM plan_online_tracking WHERE plan_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("loading online tracking: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ot domain.OnlineTracking
		var sent int
		var sentAt sql.NullString
		if err := rows.Scan(&ot.ModuleID, &sent, &sentAt); err != nil {
			return fmt.Errorf("scanning online tracking row: %w", err)
		}
		ot.TutorialSent = intToBool(sent)
		ot.SentAt = parseNullableTime(sentAt, time.RFC3339)
		p.OnlineModules = append(p.OnlineModules, ot)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating online tracking: %w", err)
	}

	fvRows, err := r.db.QueryContext(ctx,
		`SELECT module_id, achieved, achieved_at, comment FROM plan_first_values WHERE plan_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("loading first values: %w", err)
	}
	defer fvRows.Close()
	for fvRows.Next() {
		var fv domain.FirstValueTracking
		var achieved int
		var achievedAt sql.NullString
		if err := fvRows.Scan(&fv.ModuleID, &achieved, &achievedAt, &fv.Comment); err != nil {
			return fmt.Errorf("scanning first value row: %w", err)
		}
		fv.Achieved = intToBool(achieved)
		fv.AchievedAt = parseNullableTime(achievedAt, time.RFC3339)
		p.FirstValues = append(p.FirstValues, fv)
	}
	return fvRows.Err()
}

func (r *SQLitePlanRepo) loadAdjustments(ctx context.Context, p *domain.OnboardingPlan) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, module_id, previous_mode, new_mode, justification, author, created_at
		FROM plan_adjustments WHERE plan_id = ? ORDER BY created_at, id`, p.ID)
	if err != nil {
		return fmt.Errorf("loading adjustments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var adj domain.Adjustment
		var createdAt string
		if err := rows.Scan(&adj.ID, &adj.ModuleID, (*string)(&adj.PreviousMode), (*string)(&adj.NewMode), &adj.Justification, &adj.Author, &createdAt); err != nil {
			return fmt.Errorf("scanning adjustment row: %w", err)
		}
		if adj.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return fmt.Errorf("parsing adjustment created_at: %w", err)
		}
		p.Adjustments = append(p.Adjustments, adj)
	}
	return rows.Err()
}
