package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) NOT NULL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone VARCHAR(30) NOT NULL,
		product VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL DEFAULT 0,
		image VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_orders_phone (phone)
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id CHAR(36) NOT NULL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price DOUBLE NOT NULL DEFAULT 0,
		image VARCHAR(255) NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate creates the tables the service needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}
