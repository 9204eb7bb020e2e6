package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pollos/internal/domain"

	"github.com/google/uuid"
)

type SQLMessageRepository struct {
	db *sql.DB
}

func NewSQLMessageRepository(db *sql.DB) *SQLMessageRepository {
	return &SQLMessageRepository{db: db}
}

func (r *SQLMessageRepository) Create(ctx context.Context, msg domain.ContactMessage) (string, error) {
	query := `
		INSERT INTO contact_messages (id, email, subject, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, query, id, msg.Email, msg.Subject, msg.Body, msg.CreatedAt.UTC()); err != nil {
		return "", fmt.Errorf("inserting contact message: %w", err)
	}

	return id, nil
}
