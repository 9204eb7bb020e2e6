package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT NOT NULL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		product TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders (phone)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate creates the tables the service needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating sqlite schema: %w", err)
		}
	}
	return nil
}
