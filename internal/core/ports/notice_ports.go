package ports

import (
	"context"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type NoticeRepository interface {
	Save(ctx context.Context, notice *domain.Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error)
	GetAll(ctx context.Context) ([]*domain.Notice, error)
	Update(ctx context.Context, notice *domain.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateNoticeInput struct {
	Title   string
	Content string
	Creator uuid.UUID
}

type UpdateNoticeInput struct {
	Title   string
	Content string
}

type NoticeService interface {
	Create(ctx context.Context, input CreateNoticeInput) (*domain.Notice, error)
	List(ctx context.Context) ([]*domain.Notice, error)
	Update(ctx context.Context, id uuid.UUID, actor domain.Actor, input UpdateNoticeInput) (*domain.Notice, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
}
