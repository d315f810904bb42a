package domain

import (
	"time"

	"github.com/google/uuid"
)

// PositionChairman is the only position allowed to close or delete polls.
const PositionChairman = "chairman"

type Member struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Nickname  string     `json:"nickname,omitempty"`
	Position  string     `json:"position,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// DisplayName resolves the label shown for a member: real name first,
// then nickname, then email, then a shortened id.
func (m *Member) DisplayName() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.Nickname != "":
		return m.Nickname
	case m.Email != "":
		return m.Email
	default:
		return m.ID.String()[:6]
	}
}

func (m *Member) IsChairman() bool {
	return m.Position == PositionChairman
}

// Actor carries the identity and position of the member performing a
// privileged operation. It is passed explicitly so services never reach
// into session state.
type Actor struct {
	ID       uuid.UUID
	Position string
}

func (a Actor) IsChairman() bool {
	return a.Position == PositionChairman
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	MemberID  uuid.UUID `json:"member_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
