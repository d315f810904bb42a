package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
)

type fakeVideoRepo struct {
	videos map[uuid.UUID]*domain.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*domain.Video)}
}

func (r *fakeVideoRepo) Save(ctx context.Context, video *domain.Video) error {
	copied := *video
	r.videos[video.ID] = &copied
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	copied := *video
	return &copied, nil
}

func (r *fakeVideoRepo) GetAll(ctx context.Context) ([]*domain.Video, error) {
	out := make([]*domain.Video, 0, len(r.videos))
	for _, v := range r.videos {
		copied := *v
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeVideoRepo) GetUntitled(ctx context.Context) ([]*domain.Video, error) {
	var out []*domain.Video
	for _, v := range r.videos {
		if v.Title == "" {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	if v, ok := r.videos[id]; ok {
		v.Title = title
	}
	return nil
}

func (r *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.videos, id)
	return nil
}

type fakeProvider struct {
	titles map[string]string
	down   bool
}

func (p *fakeProvider) ParseVideoID(url string) (string, error) {
	if len(url) < 11 {
		return "", domain.ErrInvalidVideoURL
	}
	return url[len(url)-11:], nil
}

func (p *fakeProvider) FetchTitle(ctx context.Context, url string) (string, error) {
	if p.down {
		return "", errors.New("oembed unreachable")
	}
	return p.titles[url], nil
}

func TestAddVideoFetchesTitle(t *testing.T) {
	repo := newFakeVideoRepo()
	url := "https://youtu.be/dQw4w9WgXcQ"
	svc := NewVideoService(repo, &fakeProvider{titles: map[string]string{url: "Club finals 2026"}})

	video, err := svc.Add(context.Background(), ports.AddVideoInput{URL: url, Creator: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", video.YouTubeID)
	assert.Equal(t, "Club finals 2026", video.Title)
}

func TestAddVideoSurvivesTitleFetchFailure(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, &fakeProvider{down: true})

	video, err := svc.Add(context.Background(), ports.AddVideoInput{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Creator: uuid.New(),
	})
	require.NoError(t, err)
	assert.Empty(t, video.Title)

	stored, err := repo.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", stored.YouTubeID)
}

func TestAddVideoRejectsBadURL(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), &fakeProvider{})

	_, err := svc.Add(context.Background(), ports.AddVideoInput{URL: "nope", Creator: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrInvalidVideoURL)
}

func TestBackfillTitles(t *testing.T) {
	repo := newFakeVideoRepo()
	ctx := context.Background()

	urlA := "https://youtu.be/aaaaaaaaaaa"
	urlB := "https://youtu.be/bbbbbbbbbbb"
	idA, idB := uuid.New(), uuid.New()
	repo.videos[idA] = &domain.Video{ID: idA, URL: urlA, YouTubeID: "aaaaaaaaaaa", CreatedAt: time.Now()}
	repo.videos[idB] = &domain.Video{ID: idB, URL: urlB, YouTubeID: "bbbbbbbbbbb", CreatedAt: time.Now()}

	svc := NewVideoService(repo, &fakeProvider{titles: map[string]string{urlA: "Semifinal doubles"}})

	filled, err := svc.BackfillTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, filled, "only the resolvable title is filled")

	remaining, err := repo.GetUntitled(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestDeleteVideoAuthorization(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, &fakeProvider{})
	ctx := context.Background()
	creator := uuid.New()

	video, err := svc.Add(ctx, ports.AddVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ", Creator: creator})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, video.ID, regularActor()), domain.ErrUnauthorized)
	assert.NoError(t, svc.Delete(ctx, video.ID, domain.Actor{ID: creator}))
}
