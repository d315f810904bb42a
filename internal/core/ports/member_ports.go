package ports

import (
	"context"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type MemberRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Member, error)
	GetAll(ctx context.Context) ([]*domain.Member, error)
	Create(ctx context.Context, member *domain.Member) error
	UpdateProfile(ctx context.Context, id uuid.UUID, nickname, position string) error
}

type UpdateProfileInput struct {
	Nickname string
	Position string
}

type MemberService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.Member, error)
	ActorFor(ctx context.Context, id uuid.UUID) (domain.Actor, error)
}
