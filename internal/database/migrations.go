package database

import (
	"database/sql"
	"fmt"
)

// schema creates the storefront order table and the suite results tables
const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	reference VARCHAR(255) UNIQUE NOT NULL,
	amount INTEGER NOT NULL,
	currency VARCHAR(3) NOT NULL,
	status VARCHAR(50) NOT NULL,
	customer_email VARCHAR(255) NOT NULL,
	customer_name VARCHAR(255) NOT NULL DEFAULT '',
	items JSONB NOT NULL DEFAULT '[]',
	card_last4 VARCHAR(4),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

CREATE TABLE IF NOT EXISTS test_runs (
	id UUID PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	environment VARCHAR(50) NOT NULL,
	browser VARCHAR(50) NOT NULL,
	exit_code INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	skipped INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_test_runs_started_at ON test_runs(started_at DESC);

CREATE TABLE IF NOT EXISTS test_results (
	run_id UUID NOT NULL REFERENCES test_runs(id) ON DELETE CASCADE,
	name VARCHAR(512) NOT NULL,
	status VARCHAR(20) NOT NULL,
	elapsed_ms BIGINT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, name)
);
`

// RunMigrations creates the necessary tables on the package connection
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return Migrate(DB)
}

// Migrate creates the necessary tables on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
