package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
)

type fakeNoticeRepo struct {
	notices map[uuid.UUID]*domain.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[uuid.UUID]*domain.Notice)}
}

func (r *fakeNoticeRepo) Save(ctx context.Context, notice *domain.Notice) error {
	copied := *notice
	r.notices[notice.ID] = &copied
	return nil
}

func (r *fakeNoticeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	notice, ok := r.notices[id]
	if !ok {
		return nil, domain.ErrNoticeNotFound
	}
	copied := *notice
	return &copied, nil
}

func (r *fakeNoticeRepo) GetAll(ctx context.Context) ([]*domain.Notice, error) {
	out := make([]*domain.Notice, 0, len(r.notices))
	for _, n := range r.notices {
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeNoticeRepo) Update(ctx context.Context, notice *domain.Notice) error {
	copied := *notice
	r.notices[notice.ID] = &copied
	return nil
}

func (r *fakeNoticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.notices, id)
	return nil
}

func createNotice(t *testing.T, svc ports.NoticeService, creator uuid.UUID, content string) *domain.Notice {
	t.Helper()
	notice, err := svc.Create(context.Background(), ports.CreateNoticeInput{
		Title:   "Court closed next week",
		Content: content,
		Creator: creator,
	})
	require.NoError(t, err)
	return notice
}

func TestCreateNoticeRendersMarkdown(t *testing.T) {
	svc := NewNoticeService(newFakeNoticeRepo())

	notice := createNotice(t, svc, uuid.New(), "# Heads up\n\nThe hall is **closed**.")
	assert.Contains(t, notice.HTML, "<h1>Heads up</h1>")
	assert.Contains(t, notice.HTML, "<strong>closed</strong>")
}

func TestNoticeMarkdownEscapesRawHTML(t *testing.T) {
	svc := NewNoticeService(newFakeNoticeRepo())

	notice := createNotice(t, svc, uuid.New(), "hello <script>alert(1)</script>")
	assert.NotContains(t, notice.HTML, "<script>")
}

func TestCreateNoticeRequiresTitleAndContent(t *testing.T) {
	svc := NewNoticeService(newFakeNoticeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.CreateNoticeInput{Content: "body", Creator: uuid.New()})
	assert.Error(t, err)

	_, err = svc.Create(ctx, ports.CreateNoticeInput{Title: "title", Creator: uuid.New()})
	assert.Error(t, err)
}

func TestUpdateNoticeOnlyByAuthor(t *testing.T) {
	svc := NewNoticeService(newFakeNoticeRepo())
	ctx := context.Background()
	author := uuid.New()

	notice := createNotice(t, svc, author, "original")

	// Even the chairman cannot edit someone else's notice.
	_, err := svc.Update(ctx, notice.ID, chairman(), ports.UpdateNoticeInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err := svc.Update(ctx, notice.ID, domain.Actor{ID: author}, ports.UpdateNoticeInput{
		Title:   "Court closed for two weeks",
		Content: "extended",
	})
	require.NoError(t, err)
	assert.Equal(t, "extended", updated.Content)
	require.NotNil(t, updated.UpdatedAt)
	assert.WithinDuration(t, time.Now(), *updated.UpdatedAt, time.Minute)
}

func TestDeleteNoticeByAuthorOrChairman(t *testing.T) {
	svc := NewNoticeService(newFakeNoticeRepo())
	ctx := context.Background()
	author := uuid.New()

	notice := createNotice(t, svc, author, "to be removed")

	err := svc.Delete(ctx, notice.ID, regularActor())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, svc.Delete(ctx, notice.ID, chairman()))
	assert.ErrorIs(t, svc.Delete(ctx, notice.ID, chairman()), domain.ErrNoticeNotFound)
}
