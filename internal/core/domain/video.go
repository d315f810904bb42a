package domain

import (
	"time"

	"github.com/google/uuid"
)

// Video is an archived YouTube link. Title comes from the oEmbed endpoint
// and may be empty when the fetch failed at insert time.
type Video struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	YouTubeID string    `json:"youtube_id"`
	Title     string    `json:"title,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
