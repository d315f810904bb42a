package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) ports.MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(nickname, ''), COALESCE(position, ''), created_at
		FROM members
		WHERE email = $1 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(nickname, ''), COALESCE(position, ''), created_at
		FROM members
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *MemberRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(nickname, ''), COALESCE(position, ''), created_at
		FROM members
		WHERE id = ANY($1) AND deleted_at IS NULL
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]*domain.Member, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(nickname, ''), COALESCE(position, ''), created_at
		FROM members
		WHERE deleted_at IS NULL
		ORDER BY name, email
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (email, name)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, member.Email, member.Name).Scan(&member.ID, &member.CreatedAt)
}

func (r *MemberRepository) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, position string) error {
	query := `
		UPDATE members
		SET nickname = NULLIF($2, ''), position = NULLIF($3, '')
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, id, nickname, position)
	return err
}

func (r *MemberRepository) scanOne(row *sql.Row) (*domain.Member, error) {
	member := &domain.Member{}
	err := row.Scan(&member.ID, &member.Email, &member.Name, &member.Nickname, &member.Position, &member.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

func (r *MemberRepository) scanMany(rows *sql.Rows) ([]*domain.Member, error) {
	var members []*domain.Member
	for rows.Next() {
		member := &domain.Member{}
		if err := rows.Scan(&member.ID, &member.Email, &member.Name, &member.Nickname, &member.Position, &member.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}
