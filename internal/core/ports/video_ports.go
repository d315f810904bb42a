package ports

import (
	"context"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type VideoRepository interface {
	Save(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	GetAll(ctx context.Context) ([]*domain.Video, error)
	GetUntitled(ctx context.Context) ([]*domain.Video, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VideoProvider abstracts the hosting site: recognizing share URLs and
// looking up the human title, typically from an oEmbed endpoint. A failed
// title lookup is not fatal to inserts.
type VideoProvider interface {
	ParseVideoID(url string) (string, error)
	FetchTitle(ctx context.Context, url string) (string, error)
}

type AddVideoInput struct {
	URL     string
	Creator uuid.UUID
}

type VideoService interface {
	Add(ctx context.Context, input AddVideoInput) (*domain.Video, error)
	List(ctx context.Context) ([]*domain.Video, error)
	BackfillTitles(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
}
