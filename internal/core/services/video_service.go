package services

import (
	"context"
	"log"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

type videoService struct {
	repo     ports.VideoRepository
	provider ports.VideoProvider
}

func NewVideoService(repo ports.VideoRepository, provider ports.VideoProvider) ports.VideoService {
	return &videoService{
		repo:     repo,
		provider: provider,
	}
}

func (s *videoService) Add(ctx context.Context, input ports.AddVideoInput) (*domain.Video, error) {
	youtubeID, err := s.provider.ParseVideoID(input.URL)
	if err != nil {
		return nil, domain.ErrInvalidVideoURL
	}

	title, err := s.provider.FetchTitle(ctx, input.URL)
	if err != nil {
		// Title lookup is best effort; the backfill job retries later.
		log.Printf("oembed title fetch failed for %s: %v", input.URL, err)
		title = ""
	}

	video := &domain.Video{
		ID:        uuid.New(),
		URL:       input.URL,
		YouTubeID: youtubeID,
		Title:     title,
		CreatedBy: input.Creator,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) List(ctx context.Context) ([]*domain.Video, error) {
	return s.repo.GetAll(ctx)
}

// BackfillTitles retries the oEmbed lookup for rows saved without a title
// and reports how many were filled in.
func (s *videoService) BackfillTitles(ctx context.Context) (int, error) {
	videos, err := s.repo.GetUntitled(ctx)
	if err != nil {
		return 0, err
	}

	filled := 0
	for _, v := range videos {
		title, err := s.provider.FetchTitle(ctx, v.URL)
		if err != nil || title == "" {
			continue
		}
		if err := s.repo.UpdateTitle(ctx, v.ID, title); err != nil {
			return filled, err
		}
		filled++
	}
	return filled, nil
}

func (s *videoService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if video.CreatedBy != actor.ID && !actor.IsChairman() {
		return domain.ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}
