package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer converts notice markdown to HTML; raw HTML in the source is
// escaped, not passed through.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

type noticeService struct {
	repo ports.NoticeRepository
}

func NewNoticeService(repo ports.NoticeRepository) ports.NoticeService {
	return &noticeService{
		repo: repo,
	}
}

func (s *noticeService) Create(ctx context.Context, input ports.CreateNoticeInput) (*domain.Notice, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Content == "" {
		return nil, errors.New("content is required")
	}

	notice := &domain.Notice{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: input.Creator,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, notice); err != nil {
		return nil, err
	}

	notice.HTML = renderMarkdown(notice.Content)
	return notice, nil
}

func (s *noticeService) List(ctx context.Context) ([]*domain.Notice, error) {
	notices, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range notices {
		n.HTML = renderMarkdown(n.Content)
	}
	return notices, nil
}

func (s *noticeService) Update(ctx context.Context, id uuid.UUID, actor domain.Actor, input ports.UpdateNoticeInput) (*domain.Notice, error) {
	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notice.CreatedBy != actor.ID {
		return nil, domain.ErrUnauthorized
	}
	if input.Title == "" || input.Content == "" {
		return nil, errors.New("title and content are required")
	}

	now := time.Now()
	notice.Title = input.Title
	notice.Content = input.Content
	notice.UpdatedAt = &now

	if err := s.repo.Update(ctx, notice); err != nil {
		return nil, err
	}

	notice.HTML = renderMarkdown(notice.Content)
	return notice, nil
}

func (s *noticeService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notice.CreatedBy != actor.ID && !actor.IsChairman() {
		return domain.ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(content), &buf); err != nil {
		// Fall back to the escaped raw text when the renderer chokes.
		return fmt.Sprintf("<p>%s</p>", html.EscapeString(content))
	}
	return buf.String()
}
