package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ports.ScheduleRepository {
	return &scheduleRepository{
		db: db,
	}
}

func (r *scheduleRepository) SaveAll(ctx context.Context, schedules []*domain.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO schedules (id, date, batch_id, closed, is_event, poll_title, created_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare schedule statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range schedules {
		_, err = stmt.ExecContext(ctx, s.ID, s.Date, s.BatchID, s.Closed, s.IsEvent, s.PollTitle, s.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert schedule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	query := `
		SELECT id, date, batch_id, closed, is_event, COALESCE(poll_title, ''), created_by, created_at
		FROM schedules
		WHERE id = $1
	`
	s := &domain.Schedule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Date, &s.BatchID, &s.Closed, &s.IsEvent, &s.PollTitle, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

func (r *scheduleRepository) GetByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Schedule, error) {
	query := `
		SELECT id, date, batch_id, closed, is_event, COALESCE(poll_title, ''), created_by, created_at
		FROM schedules
		WHERE batch_id = $1
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

func (r *scheduleRepository) GetAll(ctx context.Context) ([]*domain.Schedule, error) {
	query := `
		SELECT id, date, batch_id, closed, is_event, COALESCE(poll_title, ''), created_by, created_at
		FROM schedules
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

func (r *scheduleRepository) CloseBatch(ctx context.Context, batchID uuid.UUID) error {
	query := `UPDATE schedules SET closed = true WHERE batch_id = $1`
	_, err := r.db.ExecContext(ctx, query, batchID)
	if err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}
	return nil
}

func (r *scheduleRepository) CloseByID(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE schedules SET closed = true WHERE id = $1 AND batch_id IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to close schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) MarkEvent(ctx context.Context, batchID uuid.UUID, winnerID uuid.UUID) error {
	// One statement keeps the exclusivity invariant even on a re-run.
	query := `UPDATE schedules SET is_event = (id = $2) WHERE batch_id = $1`
	_, err := r.db.ExecContext(ctx, query, batchID, winnerID)
	if err != nil {
		return fmt.Errorf("failed to mark winner: %w", err)
	}
	return nil
}

func (r *scheduleRepository) MarkEventByID(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE schedules SET is_event = true WHERE id = $1 AND batch_id IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark event: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	query := `DELETE FROM schedules WHERE id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete schedules: %w", err)
	}
	return nil
}

func (r *scheduleRepository) scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	var schedules []*domain.Schedule
	for rows.Next() {
		s := &domain.Schedule{}
		if err := rows.Scan(&s.ID, &s.Date, &s.BatchID, &s.Closed, &s.IsEvent, &s.PollTitle, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}
	return schedules, nil
}
