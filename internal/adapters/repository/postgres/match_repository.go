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

type matchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) ports.MatchRepository {
	return &matchRepository{
		db: db,
	}
}

func (r *matchRepository) Save(ctx context.Context, match *domain.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryMatch := `
		INSERT INTO matches (id, date, team_a_name, team_b_name, score_a, score_b, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryMatch, match.ID, match.Date, match.TeamAName, match.TeamBName, match.ScoreA, match.ScoreB, match.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	queryParticipant := `
		INSERT INTO match_participants (match_id, member_id, team, result, score_for, score_against)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (match_id, member_id) DO UPDATE
		SET team = EXCLUDED.team,
		    result = EXCLUDED.result,
		    score_for = EXCLUDED.score_for,
		    score_against = EXCLUDED.score_against
	`
	stmt, err := tx.PrepareContext(ctx, queryParticipant)
	if err != nil {
		return fmt.Errorf("failed to prepare participant statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range match.Participants {
		_, err = stmt.ExecContext(ctx, p.MatchID, p.MemberID, p.Team, p.Result, p.ScoreFor, p.ScoreAgainst)
		if err != nil {
			return fmt.Errorf("failed to upsert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	query := `
		SELECT id, date, team_a_name, team_b_name, score_a, score_b, created_by, created_at
		FROM matches
		WHERE id = $1
	`
	m := &domain.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Date, &m.TeamAName, &m.TeamBName, &m.ScoreA, &m.ScoreB, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	participants, err := r.fetchParticipants(ctx, []uuid.UUID{m.ID})
	if err != nil {
		return nil, err
	}
	m.Participants = participants[m.ID]
	return m, nil
}

func (r *matchRepository) GetAll(ctx context.Context) ([]*domain.Match, error) {
	query := `
		SELECT id, date, team_a_name, team_b_name, score_a, score_b, created_by, created_at
		FROM matches
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m := &domain.Match{}
		if err := rows.Scan(&m.ID, &m.Date, &m.TeamAName, &m.TeamBName, &m.ScoreA, &m.ScoreB, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	if len(matches) == 0 {
		return matches, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	participants, err := r.fetchParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		m.Participants = participants[m.ID]
	}
	return matches, nil
}

func (r *matchRepository) GetParticipantsByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.MatchParticipant, error) {
	query := `
		SELECT match_id, member_id, team, result, score_for, score_against
		FROM match_participants
		WHERE member_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participations: %w", err)
	}
	defer rows.Close()

	var participants []*domain.MatchParticipant
	for rows.Next() {
		p := &domain.MatchParticipant{}
		if err := rows.Scan(&p.MatchID, &p.MemberID, &p.Team, &p.Result, &p.ScoreFor, &p.ScoreAgainst); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	return participants, nil
}

func (r *matchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_participants WHERE match_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *matchRepository) fetchParticipants(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID][]*domain.MatchParticipant, error) {
	query := `
		SELECT match_id, member_id, team, result, score_for, score_against
		FROM match_participants
		WHERE match_id = ANY($1)
		ORDER BY team, member_id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	byMatch := make(map[uuid.UUID][]*domain.MatchParticipant)
	for rows.Next() {
		p := &domain.MatchParticipant{}
		if err := rows.Scan(&p.MatchID, &p.MemberID, &p.Team, &p.Result, &p.ScoreFor, &p.ScoreAgainst); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	return byMatch, nil
}
