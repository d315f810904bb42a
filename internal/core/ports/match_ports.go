package ports

import (
	"context"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type MatchRepository interface {
	Save(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetAll(ctx context.Context) ([]*domain.Match, error)
	GetParticipantsByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.MatchParticipant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateMatchInput struct {
	Date      time.Time
	TeamAName string
	TeamBName string
	TeamA     []uuid.UUID
	TeamB     []uuid.UUID
	ScoreA    int
	ScoreB    int
	Creator   uuid.UUID
}

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*domain.Match, error)
	List(ctx context.Context) ([]*domain.Match, error)
	MemberRecord(ctx context.Context, memberID uuid.UUID) (*domain.MemberRecord, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
}
