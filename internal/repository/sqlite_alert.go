package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/domain"
)

// SQLiteAlertRepo implements AlertRepo backed by SQLite.
type SQLiteAlertRepo struct {
	db db.DBTX
}

func NewSQLiteAlertRepo(db db.DBTX) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: db}
}

const alertColumns = `id, client_id, kind, message, severity, status, created_at, acked_at, resolved_at`

func (r *SQLiteAlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ClientID, a.Kind, a.Message,
		string(a.Severity), string(a.Status),
		a.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(a.AckedAt, time.RFC3339),
		nullableTimeToString(a.ResolvedAt, time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting alert: %w", err)
	}
	return nil
}

func (r *SQLiteAlertRepo) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = ?`
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return a, nil
}

func (r *SQLiteAlertRepo) ListByClient(ctx context.Context, clientID string, openOnly bool) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE client_id = ?`
	if openOnly {
		query += ` AND status != 'resolved'`
	}
	query += ` ORDER BY CASE severity WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END, created_at`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *SQLiteAlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	query := `UPDATE alerts SET status = ?, acked_at = ?, resolved_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(a.Status),
		nullableTimeToString(a.AckedAt, time.RFC3339),
		nullableTimeToString(a.ResolvedAt, time.RFC3339),
		a.ID)
	if err != nil {
		return fmt.Errorf("updating alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alert %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	var createdAt string
	var ackedAt, resolvedAt sql.NullString
	err := row.Scan(&a.ID, &a.ClientID, &a.Kind, &a.Message,
		(*string)(&a.Severity), (*string)(&a.Status),
		&createdAt, &ackedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	a.AckedAt = parseNullableTime(ackedAt, time.RFC3339)
	a.ResolvedAt = parseNullableTime(resolvedAt, time.RFC3339)
	return &a, nil
}
