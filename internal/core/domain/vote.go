package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteKey is the composite key shared by votes and derived attendance rows:
// one member, one candidate date.
type VoteKey struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	MemberID   uuid.UUID `json:"member_id"`
}

// ScheduleVote is one member's support for one candidate date. A member may
// vote for several candidates within the same batch (expressing availability
// across dates), but at most once per candidate.
type ScheduleVote struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	MemberID   uuid.UUID `json:"member_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (v *ScheduleVote) Key() VoteKey {
	return VoteKey{ScheduleID: v.ScheduleID, MemberID: v.MemberID}
}
