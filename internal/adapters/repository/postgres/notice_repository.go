package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

type noticeRepository struct {
	db *sql.DB
}

func NewNoticeRepository(db *sql.DB) ports.NoticeRepository {
	return &noticeRepository{
		db: db,
	}
}

func (r *noticeRepository) Save(ctx context.Context, notice *domain.Notice) error {
	query := `
		INSERT INTO notices (id, title, content, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, notice.ID, notice.Title, notice.Content, notice.CreatedBy).Scan(&notice.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notice: %w", err)
	}
	return nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	query := `
		SELECT id, title, content, created_by, created_at, updated_at
		FROM notices
		WHERE id = $1
	`
	n := &domain.Notice{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	return n, nil
}

func (r *noticeRepository) GetAll(ctx context.Context) ([]*domain.Notice, error) {
	query := `
		SELECT id, title, content, created_by, created_at, updated_at
		FROM notices
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get notices: %w", err)
	}
	defer rows.Close()

	var notices []*domain.Notice
	for rows.Next() {
		n := &domain.Notice{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notices: %w", err)
	}
	return notices, nil
}

func (r *noticeRepository) Update(ctx context.Context, notice *domain.Notice) error {
	query := `
		UPDATE notices
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, notice.ID, notice.Title, notice.Content)
	if err != nil {
		return fmt.Errorf("failed to update notice: %w", err)
	}
	return nil
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notices WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	return nil
}
