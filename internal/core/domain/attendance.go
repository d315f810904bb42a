package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is a member's presence record for a confirmed event. Rows
// derived by poll resolution start as a plain "attended" (no late, no
// exempt); manual edits afterwards are never overwritten by a re-run.
type Attendance struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	MemberID   uuid.UUID `json:"member_id"`
	Late       bool      `json:"late"`
	Exempt     bool      `json:"exempt"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Attendance) Key() VoteKey {
	return VoteKey{ScheduleID: a.ScheduleID, MemberID: a.MemberID}
}
