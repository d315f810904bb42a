package ports

import (
	"context"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type ScheduleRepository interface {
	SaveAll(ctx context.Context, schedules []*domain.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
	GetByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Schedule, error)
	GetAll(ctx context.Context) ([]*domain.Schedule, error)
	CloseBatch(ctx context.Context, batchID uuid.UUID) error
	CloseByID(ctx context.Context, id uuid.UUID) error
	// MarkEvent sets is_event on the winner and clears it on every other
	// candidate of the batch in one statement.
	MarkEvent(ctx context.Context, batchID uuid.UUID, winnerID uuid.UUID) error
	MarkEventByID(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

type VoteRepository interface {
	GetBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) ([]*domain.ScheduleVote, error)
	Exists(ctx context.Context, key domain.VoteKey) (bool, error)
	Insert(ctx context.Context, vote *domain.ScheduleVote) error
	Delete(ctx context.Context, key domain.VoteKey) error
	DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error
}

type AttendanceRepository interface {
	// UpsertAll inserts the given attendance rows, silently keeping any row
	// that already exists for the same (schedule, member) key.
	UpsertAll(ctx context.Context, rows []*domain.Attendance) error
	GetBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*domain.Attendance, error)
	DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error
}

type CreateBatchInput struct {
	Dates   []time.Time
	Title   string
	Creator uuid.UUID
}

// Voter is a vote resolved to a display name for the standings view.
type Voter struct {
	MemberID    uuid.UUID `json:"member_id"`
	DisplayName string    `json:"display_name"`
}

type CandidateStanding struct {
	Schedule  *domain.Schedule `json:"schedule"`
	VoteCount int              `json:"vote_count"`
	Voters    []Voter          `json:"voters"`
}

type PollStanding struct {
	BatchID    *uuid.UUID          `json:"batch_id,omitempty"`
	Title      string              `json:"title"`
	Closed     bool                `json:"closed"`
	Winner     *domain.Schedule    `json:"winner,omitempty"`
	Candidates []CandidateStanding `json:"candidates"`
}

type ScheduleService interface {
	CreateBatch(ctx context.Context, input CreateBatchInput) ([]*domain.Schedule, error)
	CreateSingle(ctx context.Context, date time.Time, title string, creator uuid.UUID) (*domain.Schedule, error)
	// ToggleVote flips the member's vote on a candidate and reports whether
	// the vote exists afterwards.
	ToggleVote(ctx context.Context, scheduleID, memberID uuid.UUID) (bool, error)
	ClosePoll(ctx context.Context, batchID uuid.UUID, actor domain.Actor) (*domain.Schedule, error)
	CloseSingle(ctx context.Context, scheduleID uuid.UUID, actor domain.Actor) (*domain.Schedule, error)
	DeleteBatch(ctx context.Context, batchID uuid.UUID, actor domain.Actor) error
	DeleteSingle(ctx context.Context, scheduleID uuid.UUID, actor domain.Actor) error
	Standings(ctx context.Context) ([]*PollStanding, error)
}
