package domain

import (
	"time"

	"github.com/google/uuid"
)

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
	ResultDraw MatchResult = "draw"
)

// Match is one recorded game between two named teams.
type Match struct {
	ID           uuid.UUID           `json:"id"`
	Date         time.Time           `json:"date"`
	TeamAName    string              `json:"team_a_name"`
	TeamBName    string              `json:"team_b_name"`
	ScoreA       int                 `json:"score_a"`
	ScoreB       int                 `json:"score_b"`
	CreatedBy    uuid.UUID           `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	Participants []*MatchParticipant `json:"participants,omitempty"`
}

// Winner reports which team won, or empty on a draw.
func (m *Match) Winner() Team {
	switch {
	case m.ScoreA > m.ScoreB:
		return TeamA
	case m.ScoreB > m.ScoreA:
		return TeamB
	default:
		return ""
	}
}

// MatchParticipant links a member to a match with the per-member outcome,
// unique per (match, member).
type MatchParticipant struct {
	MatchID      uuid.UUID   `json:"match_id"`
	MemberID     uuid.UUID   `json:"member_id"`
	Team         Team        `json:"team"`
	Result       MatchResult `json:"result"`
	ScoreFor     int         `json:"score_for"`
	ScoreAgainst int         `json:"score_against"`
	DisplayName  string      `json:"display_name,omitempty"`
}

// MemberRecord is a member's aggregated win/loss tally.
type MemberRecord struct {
	MemberID uuid.UUID `json:"member_id"`
	Games    int       `json:"games"`
	Wins     int       `json:"wins"`
	Losses   int       `json:"losses"`
	Draws    int       `json:"draws"`
}
