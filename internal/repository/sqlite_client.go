package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(db db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: db}
}

const clientColumns = `id, account_code, name, segment, owner, status, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.AccountCode,
		c.Name,
		c.Segment,
		c.Owner,
		string(c.Status),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	return r.scanClient(row)
}

func (r *SQLiteClientRepo) GetByCode(ctx context.Context, accountCode string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE account_code = ?`, accountCode)
	return r.scanClient(row)
}

func (r *SQLiteClientRepo) List(ctx context.Context, includeChurned bool) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	if !includeChurned {
		query += ` WHERE status != 'churned'`
	}
	query += ` ORDER BY account_code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		var c domain.Client
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.AccountCode, &c.Name, &c.Segment, &c.Owner, (*string)(&c.Status), &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		if err := populateClientTimes(&c, createdAt, updatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET account_code = ?, name = ?, segment = ?, owner = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.AccountCode,
		c.Name,
		c.Segment,
		c.Owner,
		string(c.Status),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteClientRepo) scanClient(row *sql.Row) (*domain.Client, error) {
	var c domain.Client
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.AccountCode, &c.Name, &c.Segment, &c.Owner, (*string)(&c.Status), &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	if err := populateClientTimes(&c, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func populateClientTimes(c *domain.Client, createdAt, updatedAt string) error {
	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
