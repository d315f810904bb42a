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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) GetBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) ([]*domain.ScheduleVote, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT schedule_id, member_id, created_at
		FROM schedule_votes
		WHERE schedule_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(scheduleIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.ScheduleVote
	for rows.Next() {
		v := &domain.ScheduleVote{}
		if err := rows.Scan(&v.ScheduleID, &v.MemberID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) Exists(ctx context.Context, key domain.VoteKey) (bool, error) {
	query := `SELECT 1 FROM schedule_votes WHERE schedule_id = $1 AND member_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, key.ScheduleID, key.MemberID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) Insert(ctx context.Context, vote *domain.ScheduleVote) error {
	// The composite primary key makes a concurrent duplicate toggle a no-op.
	query := `
		INSERT INTO schedule_votes (schedule_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT (schedule_id, member_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, vote.ScheduleID, vote.MemberID)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, key domain.VoteKey) error {
	query := `DELETE FROM schedule_votes WHERE schedule_id = $1 AND member_id = $2`
	_, err := r.db.ExecContext(ctx, query, key.ScheduleID, key.MemberID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error {
	query := `DELETE FROM schedule_votes WHERE schedule_id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(scheduleIDs))
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	return nil
}
