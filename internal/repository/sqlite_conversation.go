package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/domain"
)

// SQLiteConversationRepo implements ConversationRepo backed by SQLite.
type SQLiteConversationRepo struct {
	db db.DBTX
}

func NewSQLiteConversationRepo(db db.DBTX) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: db}
}

const conversationColumns = `id, client_id, channel, subject, priority, status, assignee, created_at, updated_at`

func (r *SQLiteConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	query := `INSERT INTO conversations (` + conversationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.ClientID, c.Channel, c.Subject,
		string(c.Priority), string(c.Status), c.Assignee,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting conversation: %w", err)
	}
	return nil
}

func (r *SQLiteConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = ?`
	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}
	return c, nil
}

func (r *SQLiteConversationRepo) List(ctx context.Context, status domain.ConversationStatus, clientID string) ([]*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE 1=1`
	var args []any
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	if clientID != "" {
		query += ` AND client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var convs []*domain.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversation row: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *SQLiteConversationRepo) Update(ctx context.Context, c *domain.Conversation) error {
	query := `UPDATE conversations SET channel = ?, subject = ?, priority = ?, status = ?, assignee = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Channel, c.Subject, string(c.Priority), string(c.Status), c.Assignee,
		c.UpdatedAt.Format(time.RFC3339), c.ID)
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func scanConversation(row interface{ Scan(...any) error }) (*domain.Conversation, error) {
	var c domain.Conversation
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.ClientID, &c.Channel, &c.Subject,
		(*string)(&c.Priority), (*string)(&c.Status), &c.Assignee,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
