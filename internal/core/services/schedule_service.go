package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

type scheduleService struct {
	scheduleRepo   ports.ScheduleRepository
	voteRepo       ports.VoteRepository
	attendanceRepo ports.AttendanceRepository
	memberRepo     ports.MemberRepository
}

func NewScheduleService(scheduleRepo ports.ScheduleRepository, voteRepo ports.VoteRepository, attendanceRepo ports.AttendanceRepository, memberRepo ports.MemberRepository) ports.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		voteRepo:       voteRepo,
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
	}
}

func (s *scheduleService) CreateBatch(ctx context.Context, input ports.CreateBatchInput) ([]*domain.Schedule, error) {
	if len(input.Dates) == 0 {
		return nil, errors.New("at least one candidate date is required")
	}
	if input.Title == "" {
		return nil, errors.New("poll title is required")
	}

	dates := dedupeDates(input.Dates)
	batchID := uuid.New()
	now := time.Now()

	schedules := make([]*domain.Schedule, 0, len(dates))
	for _, d := range dates {
		schedules = append(schedules, &domain.Schedule{
			ID:        uuid.New(),
			Date:      d,
			BatchID:   &batchID,
			Closed:    false,
			IsEvent:   false,
			PollTitle: input.Title,
			CreatedBy: input.Creator,
			CreatedAt: now,
		})
	}

	if err := s.scheduleRepo.SaveAll(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s *scheduleService) CreateSingle(ctx context.Context, date time.Time, title string, creator uuid.UUID) (*domain.Schedule, error) {
	schedule := &domain.Schedule{
		ID:        uuid.New(),
		Date:      truncateToDay(date),
		BatchID:   nil,
		PollTitle: title,
		CreatedBy: creator,
		CreatedAt: time.Now(),
	}
	if err := s.scheduleRepo.SaveAll(ctx, []*domain.Schedule{schedule}); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) ToggleVote(ctx context.Context, scheduleID, memberID uuid.UUID) (bool, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return false, err
	}
	if schedule.Closed {
		return false, domain.ErrInvalidState
	}

	key := domain.VoteKey{ScheduleID: scheduleID, MemberID: memberID}
	exists, err := s.voteRepo.Exists(ctx, key)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.voteRepo.Delete(ctx, key); err != nil {
			return false, err
		}
		return false, nil
	}

	vote := &domain.ScheduleVote{
		ScheduleID: scheduleID,
		MemberID:   memberID,
		CreatedAt:  time.Now(),
	}
	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		return false, err
	}
	return true, nil
}

// ClosePoll resolves a poll batch: tally votes, pick the winner, close every
// candidate, mark the winner as the event and derive attendance for its
// voters. The store has no cross-table transactions, so the steps run in a
// fixed order and each is individually idempotent; a partial failure leaves
// the completed steps in place and the whole call can simply be re-run.
func (s *scheduleService) ClosePoll(ctx context.Context, batchID uuid.UUID, actor domain.Actor) (*domain.Schedule, error) {
	if !actor.IsChairman() {
		return nil, domain.ErrUnauthorized
	}

	candidates, err := s.scheduleRepo.GetByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domain.ErrBatchNotFound
	}

	votes, err := s.voteRepo.GetBySchedules(ctx, scheduleIDs(candidates))
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	// Votes persisted after this snapshot are not part of the resolution.
	winner := resolveWinner(candidates, votes)

	if err := s.scheduleRepo.CloseBatch(ctx, batchID); err != nil {
		log.Printf("close poll %s: close step failed: %v", batchID, err)
		return nil, fmt.Errorf("close candidates: %w", err)
	}
	if err := s.scheduleRepo.MarkEvent(ctx, batchID, winner.ID); err != nil {
		log.Printf("close poll %s: winner marking step failed: %v", batchID, err)
		return nil, fmt.Errorf("mark winner: %w", err)
	}
	if err := s.attendanceRepo.UpsertAll(ctx, attendanceFor(winner.ID, votes)); err != nil {
		log.Printf("close poll %s: attendance step failed: %v", batchID, err)
		return nil, fmt.Errorf("derive attendance: %w", err)
	}

	winner.Closed = true
	winner.IsEvent = true
	return winner, nil
}

// CloseSingle is the degenerate case of ClosePoll for a standalone proposal.
func (s *scheduleService) CloseSingle(ctx context.Context, scheduleID uuid.UUID, actor domain.Actor) (*domain.Schedule, error) {
	if !actor.IsChairman() {
		return nil, domain.ErrUnauthorized
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.BatchID != nil {
		return nil, domain.ErrInvalidState
	}

	votes, err := s.voteRepo.GetBySchedules(ctx, []uuid.UUID{scheduleID})
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	if err := s.scheduleRepo.CloseByID(ctx, scheduleID); err != nil {
		log.Printf("close schedule %s: close step failed: %v", scheduleID, err)
		return nil, fmt.Errorf("close schedule: %w", err)
	}
	if err := s.scheduleRepo.MarkEventByID(ctx, scheduleID); err != nil {
		log.Printf("close schedule %s: event marking step failed: %v", scheduleID, err)
		return nil, fmt.Errorf("mark event: %w", err)
	}
	if err := s.attendanceRepo.UpsertAll(ctx, attendanceFor(scheduleID, votes)); err != nil {
		log.Printf("close schedule %s: attendance step failed: %v", scheduleID, err)
		return nil, fmt.Errorf("derive attendance: %w", err)
	}

	schedule.Closed = true
	schedule.IsEvent = true
	return schedule, nil
}

// DeleteBatch removes a fully closed batch and everything hanging off it,
// dependents first so an interrupted delete never leaves orphan references.
func (s *scheduleService) DeleteBatch(ctx context.Context, batchID uuid.UUID, actor domain.Actor) error {
	if !actor.IsChairman() {
		return domain.ErrUnauthorized
	}

	candidates, err := s.scheduleRepo.GetByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return domain.ErrBatchNotFound
	}
	for _, c := range candidates {
		if !c.Closed {
			return domain.ErrInvalidState
		}
	}

	return s.deleteSchedules(ctx, scheduleIDs(candidates))
}

func (s *scheduleService) DeleteSingle(ctx context.Context, scheduleID uuid.UUID, actor domain.Actor) error {
	if !actor.IsChairman() {
		return domain.ErrUnauthorized
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if schedule.BatchID != nil || !schedule.Closed {
		return domain.ErrInvalidState
	}

	return s.deleteSchedules(ctx, []uuid.UUID{scheduleID})
}

func (s *scheduleService) deleteSchedules(ctx context.Context, ids []uuid.UUID) error {
	if err := s.voteRepo.DeleteBySchedules(ctx, ids); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}
	if err := s.attendanceRepo.DeleteBySchedules(ctx, ids); err != nil {
		return fmt.Errorf("delete attendances: %w", err)
	}
	if err := s.scheduleRepo.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}
	return nil
}

// Standings is the read model behind the schedule page: candidates grouped
// into polls, vote counts with resolved voter names, open polls first.
func (s *scheduleService) Standings(ctx context.Context) ([]*ports.PollStanding, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	if len(schedules) == 0 {
		return []*ports.PollStanding{}, nil
	}

	votes, err := s.voteRepo.GetBySchedules(ctx, scheduleIDs(schedules))
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	names, err := s.voterNames(ctx, votes)
	if err != nil {
		return nil, err
	}

	votesBySchedule := make(map[uuid.UUID][]*domain.ScheduleVote)
	for _, v := range votes {
		votesBySchedule[v.ScheduleID] = append(votesBySchedule[v.ScheduleID], v)
	}

	groups := make(map[string][]*domain.Schedule)
	order := []string{}
	for _, sch := range schedules {
		key := "single-" + sch.ID.String()
		if sch.BatchID != nil {
			key = sch.BatchID.String()
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], sch)
	}

	standings := make([]*ports.PollStanding, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		standing := &ports.PollStanding{
			BatchID: group[0].BatchID,
			Title:   group[0].PollTitle,
			Closed:  true,
		}
		for _, sch := range group {
			if !sch.Closed {
				standing.Closed = false
			}
			if sch.IsEvent {
				standing.Winner = sch
			}
			scheduleVotes := votesBySchedule[sch.ID]
			voters := make([]ports.Voter, 0, len(scheduleVotes))
			for _, v := range scheduleVotes {
				voters = append(voters, ports.Voter{MemberID: v.MemberID, DisplayName: names[v.MemberID]})
			}
			standing.Candidates = append(standing.Candidates, ports.CandidateStanding{
				Schedule:  sch,
				VoteCount: len(scheduleVotes),
				Voters:    voters,
			})
		}
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Closed != standings[j].Closed {
			return !standings[i].Closed
		}
		return standings[i].Candidates[0].Schedule.CreatedAt.After(standings[j].Candidates[0].Schedule.CreatedAt)
	})

	return standings, nil
}

func (s *scheduleService) voterNames(ctx context.Context, votes []*domain.ScheduleVote) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]bool)
	ids := []uuid.UUID{}
	for _, v := range votes {
		if !seen[v.MemberID] {
			seen[v.MemberID] = true
			ids = append(ids, v.MemberID)
		}
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	members, err := s.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load voter profiles: %w", err)
	}
	for _, m := range members {
		names[m.ID] = m.DisplayName()
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			names[id] = id.String()[:6]
		}
	}
	return names, nil
}

// resolveWinner tallies distinct voters per candidate and picks the highest
// count, breaking ties by the earliest date. The ordering is total, so the
// same snapshot always yields the same winner.
func resolveWinner(candidates []*domain.Schedule, votes []*domain.ScheduleVote) *domain.Schedule {
	counts := make(map[uuid.UUID]int, len(candidates))
	for _, c := range candidates {
		counts[c.ID] = 0
	}
	seen := make(map[domain.VoteKey]bool, len(votes))
	for _, v := range votes {
		if _, ok := counts[v.ScheduleID]; !ok {
			continue
		}
		if seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		counts[v.ScheduleID]++
	}

	ranked := make([]*domain.Schedule, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i].ID] != counts[ranked[j].ID] {
			return counts[ranked[i].ID] > counts[ranked[j].ID]
		}
		return ranked[i].Date.Before(ranked[j].Date)
	})
	return ranked[0]
}

// attendanceFor builds the derived rows for the winner's voters: present,
// not late, not exempt.
func attendanceFor(winnerID uuid.UUID, votes []*domain.ScheduleVote) []*domain.Attendance {
	now := time.Now()
	rows := []*domain.Attendance{}
	seen := make(map[uuid.UUID]bool)
	for _, v := range votes {
		if v.ScheduleID != winnerID || seen[v.MemberID] {
			continue
		}
		seen[v.MemberID] = true
		rows = append(rows, &domain.Attendance{
			ScheduleID: winnerID,
			MemberID:   v.MemberID,
			Late:       false,
			Exempt:     false,
			CreatedAt:  now,
		})
	}
	return rows
}

func scheduleIDs(schedules []*domain.Schedule) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
	}
	return ids
}

func dedupeDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := truncateToDay(d)
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
