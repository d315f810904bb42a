package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

// teamLimit caps each side of a recorded game (doubles at most).
const teamLimit = 2

type matchService struct {
	matchRepo  ports.MatchRepository
	memberRepo ports.MemberRepository
}

func NewMatchService(matchRepo ports.MatchRepository, memberRepo ports.MemberRepository) ports.MatchService {
	return &matchService{
		matchRepo:  matchRepo,
		memberRepo: memberRepo,
	}
}

func (s *matchService) Create(ctx context.Context, input ports.CreateMatchInput) (*domain.Match, error) {
	if input.TeamAName == "" || input.TeamBName == "" {
		return nil, errors.New("both team names are required")
	}
	if len(input.TeamA) == 0 || len(input.TeamA) > teamLimit ||
		len(input.TeamB) == 0 || len(input.TeamB) > teamLimit {
		return nil, fmt.Errorf("each team needs 1 to %d members", teamLimit)
	}
	if overlap(input.TeamA, input.TeamB) {
		return nil, errors.New("a member cannot play on both teams")
	}
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, errors.New("scores cannot be negative")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	match := &domain.Match{
		ID:        uuid.New(),
		Date:      truncateToDay(date),
		TeamAName: input.TeamAName,
		TeamBName: input.TeamBName,
		ScoreA:    input.ScoreA,
		ScoreB:    input.ScoreB,
		CreatedBy: input.Creator,
		CreatedAt: time.Now(),
	}

	for _, memberID := range input.TeamA {
		match.Participants = append(match.Participants, &domain.MatchParticipant{
			MatchID:      match.ID,
			MemberID:     memberID,
			Team:         domain.TeamA,
			Result:       resultFor(input.ScoreA, input.ScoreB),
			ScoreFor:     input.ScoreA,
			ScoreAgainst: input.ScoreB,
		})
	}
	for _, memberID := range input.TeamB {
		match.Participants = append(match.Participants, &domain.MatchParticipant{
			MatchID:      match.ID,
			MemberID:     memberID,
			Team:         domain.TeamB,
			Result:       resultFor(input.ScoreB, input.ScoreA),
			ScoreFor:     input.ScoreB,
			ScoreAgainst: input.ScoreA,
		})
	}

	if err := s.matchRepo.Save(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]*domain.Match, error) {
	matches, err := s.matchRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.resolveNames(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) MemberRecord(ctx context.Context, memberID uuid.UUID) (*domain.MemberRecord, error) {
	participants, err := s.matchRepo.GetParticipantsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	record := &domain.MemberRecord{MemberID: memberID}
	for _, p := range participants {
		record.Games++
		switch p.Result {
		case domain.ResultWin:
			record.Wins++
		case domain.ResultLoss:
			record.Losses++
		case domain.ResultDraw:
			record.Draws++
		}
	}
	return record, nil
}

func (s *matchService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if match.CreatedBy != actor.ID && !actor.IsChairman() {
		return domain.ErrUnauthorized
	}
	return s.matchRepo.Delete(ctx, id)
}

func (s *matchService) resolveNames(ctx context.Context, matches []*domain.Match) error {
	seen := make(map[uuid.UUID]bool)
	ids := []uuid.UUID{}
	for _, m := range matches {
		for _, p := range m.Participants {
			if !seen[p.MemberID] {
				seen[p.MemberID] = true
				ids = append(ids, p.MemberID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	members, err := s.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load participant profiles: %w", err)
	}
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.ID] = m.DisplayName()
	}
	for _, m := range matches {
		for _, p := range m.Participants {
			if name, ok := names[p.MemberID]; ok {
				p.DisplayName = name
			} else {
				p.DisplayName = p.MemberID.String()[:6]
			}
		}
	}
	return nil
}

func resultFor(scoreFor, scoreAgainst int) domain.MatchResult {
	switch {
	case scoreFor > scoreAgainst:
		return domain.ResultWin
	case scoreFor < scoreAgainst:
		return domain.ResultLoss
	default:
		return domain.ResultDraw
	}
}

func overlap(a, b []uuid.UUID) bool {
	set := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
