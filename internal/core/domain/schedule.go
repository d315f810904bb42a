package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one candidate date, either part of a poll batch or a
// standalone proposal (BatchID nil). All candidates of a batch share the
// poll title and move between open and closed together; after resolution
// exactly one candidate of the batch carries IsEvent.
type Schedule struct {
	ID        uuid.UUID  `json:"id"`
	Date      time.Time  `json:"date"`
	BatchID   *uuid.UUID `json:"batch_id,omitempty"`
	Closed    bool       `json:"closed"`
	IsEvent   bool       `json:"is_event"`
	PollTitle string     `json:"poll_title,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

func (s *Schedule) InBatch(batchID uuid.UUID) bool {
	return s.BatchID != nil && *s.BatchID == batchID
}
