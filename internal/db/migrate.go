package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema statements in order. Every statement uses
// IF NOT EXISTS, so re-running against an existing database is a no-op.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		account_code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		segment TEXT NOT NULL DEFAULT '',
		owner TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'onboarding'
			CHECK (status IN ('onboarding', 'active', 'churned')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		status TEXT NOT NULL DEFAULT 'in_progress'
			CHECK (status IN ('in_progress', 'completed', 'canceled')),
		progress_pct INTEGER NOT NULL DEFAULT 0,
		handoff_eligible INTEGER NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL,
		urgency TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_client ON plans(client_id)`,

	`CREATE TABLE IF NOT EXISTS plan_classification (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		module_id TEXT NOT NULL,
		mode TEXT NOT NULL CHECK (mode IN ('live', 'online')),
		PRIMARY KEY (plan_id, module_id)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_sessions (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		module_ids TEXT NOT NULL,
		total_minutes INTEGER NOT NULL,
		suggested_date TEXT NOT NULL,
		execution_date TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled', 'completed')),
		notes TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_plan ON plan_sessions(plan_id, seq)`,

	`CREATE TABLE IF NOT EXISTS plan_online_tracking (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		module_id TEXT NOT NULL,
		tutorial_sent INTEGER NOT NULL DEFAULT 0,
		sent_at TEXT,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, module_id)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_first_values (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		module_id TEXT NOT NULL,
		achieved INTEGER NOT NULL DEFAULT 0,
		achieved_at TEXT,
		comment TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, module_id)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_adjustments (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		module_id TEXT NOT NULL,
		previous_mode TEXT NOT NULL,
		new_mode TEXT NOT NULL,
		justification TEXT NOT NULL,
		author TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_adjustments_plan ON plan_adjustments(plan_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		channel TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'normal'
			CHECK (priority IN ('low', 'normal', 'high')),
		status TEXT NOT NULL DEFAULT 'new'
			CHECK (status IN ('new', 'triaged', 'waiting', 'resolved')),
		assignee TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_conversations_status ON conversations(status, created_at)`,

	`CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		kind TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		severity TEXT NOT NULL DEFAULT 'normal'
			CHECK (severity IN ('low', 'normal', 'high')),
		status TEXT NOT NULL DEFAULT 'open'
			CHECK (status IN ('open', 'acknowledged', 'resolved')),
		created_at TEXT NOT NULL,
		acked_at TEXT,
		resolved_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_alerts_client ON alerts(client_id, status)`,
}
