package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

type videoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) ports.VideoRepository {
	return &videoRepository{
		db: db,
	}
}

func (r *videoRepository) Save(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, url, youtube_id, title, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, video.ID, video.URL, video.YouTubeID, video.Title, video.CreatedBy).Scan(&video.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `
		SELECT id, url, youtube_id, COALESCE(title, ''), created_by, created_at
		FROM videos
		WHERE id = $1
	`
	v := &domain.Video{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.URL, &v.YouTubeID, &v.Title, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return v, nil
}

func (r *videoRepository) GetAll(ctx context.Context) ([]*domain.Video, error) {
	query := `
		SELECT id, url, youtube_id, COALESCE(title, ''), created_by, created_at
		FROM videos
		ORDER BY created_at DESC
	`
	return r.queryVideos(ctx, query)
}

func (r *videoRepository) GetUntitled(ctx context.Context) ([]*domain.Video, error) {
	query := `
		SELECT id, url, youtube_id, COALESCE(title, ''), created_by, created_at
		FROM videos
		WHERE title IS NULL OR title = ''
		ORDER BY created_at
	`
	return r.queryVideos(ctx, query)
}

func (r *videoRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	query := `UPDATE videos SET title = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, title)
	if err != nil {
		return fmt.Errorf("failed to update video title: %w", err)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM videos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (r *videoRepository) queryVideos(ctx context.Context, query string) ([]*domain.Video, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		v := &domain.Video{}
		if err := rows.Scan(&v.ID, &v.URL, &v.YouTubeID, &v.Title, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return videos, nil
}
