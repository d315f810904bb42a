package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baetodi/club/internal/adapters/repository/memory"
	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
)

func newScheduleFixture() (ports.ScheduleService, *memory.Store) {
	store := memory.NewStore()
	svc := NewScheduleService(store.Schedules(), store.Votes(), store.Attendances(), store.Members())
	return svc, store
}

func chairman() domain.Actor {
	return domain.Actor{ID: uuid.New(), Position: domain.PositionChairman}
}

func regularActor() domain.Actor {
	return domain.Actor{ID: uuid.New(), Position: "member"}
}

func seedMember(t *testing.T, store *memory.Store, name string) uuid.UUID {
	t.Helper()
	m := &domain.Member{ID: uuid.New(), Email: name + "@example.com", Name: name}
	require.NoError(t, store.Members().Create(context.Background(), m))
	return m.ID
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func createPoll(t *testing.T, svc ports.ScheduleService, dates ...time.Time) []*domain.Schedule {
	t.Helper()
	schedules, err := svc.CreateBatch(context.Background(), ports.CreateBatchInput{
		Dates:   dates,
		Title:   "Saturday practice",
		Creator: uuid.New(),
	})
	require.NoError(t, err)
	return schedules
}

func vote(t *testing.T, svc ports.ScheduleService, scheduleID, memberID uuid.UUID) {
	t.Helper()
	voted, err := svc.ToggleVote(context.Background(), scheduleID, memberID)
	require.NoError(t, err)
	require.True(t, voted)
}

func TestClosePollPicksMostVotedCandidate(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1), day(2))
	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	carol := seedMember(t, store, "carol")

	vote(t, svc, candidates[1].ID, alice)
	vote(t, svc, candidates[1].ID, bob)
	vote(t, svc, candidates[0].ID, carol)

	winner, err := svc.ClosePoll(ctx, *candidates[0].BatchID, chairman())
	require.NoError(t, err)
	assert.Equal(t, candidates[1].ID, winner.ID)
	assert.True(t, winner.Closed)
	assert.True(t, winner.IsEvent)

	// Every candidate is closed and only the winner carries the event flag.
	for _, c := range candidates {
		state, ok := store.ScheduleState(c.ID)
		require.True(t, ok)
		assert.True(t, state.Closed)
		assert.Equal(t, c.ID == winner.ID, state.IsEvent)
	}

	// Attendance covers exactly the winner's voters, present and not exempt.
	for _, memberID := range []uuid.UUID{alice, bob} {
		row, ok := store.AttendanceState(domain.VoteKey{ScheduleID: winner.ID, MemberID: memberID})
		require.True(t, ok, "missing attendance for voter")
		assert.False(t, row.Late)
		assert.False(t, row.Exempt)
	}
	_, ok := store.AttendanceState(domain.VoteKey{ScheduleID: winner.ID, MemberID: carol})
	assert.False(t, ok, "non-voter must not get attendance")
}

func TestClosePollTieBreaksByEarlierDate(t *testing.T) {
	svc, store := newScheduleFixture()

	candidates := createPoll(t, svc, day(5), day(2), day(9))
	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")

	// One vote each on the two later dates; the earlier of the tied pair wins.
	vote(t, svc, candidates[1].ID, alice)
	vote(t, svc, candidates[2].ID, bob)

	winner, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, chairman())
	require.NoError(t, err)
	assert.Equal(t, day(5), winner.Date)
}

func TestClosePollZeroVotes(t *testing.T) {
	svc, store := newScheduleFixture()

	candidates := createPoll(t, svc, day(3), day(1), day(7))

	winner, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, chairman())
	require.NoError(t, err)
	assert.Equal(t, day(1), winner.Date, "tie at zero resolves to the earliest date")

	rows, err := store.Attendances().GetBySchedule(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClosePollCountsVotersNotVotes(t *testing.T) {
	svc, store := newScheduleFixture()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	carol := seedMember(t, store, "carol")

	// Alice backs both dates; her second vote must not outweigh two people.
	vote(t, svc, candidates[0].ID, alice)
	vote(t, svc, candidates[1].ID, alice)
	vote(t, svc, candidates[1].ID, bob)
	vote(t, svc, candidates[1].ID, carol)

	winner, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, chairman())
	require.NoError(t, err)
	assert.Equal(t, candidates[1].ID, winner.ID)
}

func TestClosePollRequiresChairman(t *testing.T) {
	svc, store := newScheduleFixture()

	candidates := createPoll(t, svc, day(0), day(1))
	writesBefore := store.Writes()

	_, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, regularActor())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, writesBefore, store.Writes(), "rejected close must not write")

	state, _ := store.ScheduleState(candidates[0].ID)
	assert.False(t, state.Closed)
}

func TestClosePollUnknownBatch(t *testing.T) {
	svc, _ := newScheduleFixture()

	_, err := svc.ClosePoll(context.Background(), uuid.New(), chairman())
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestClosePollTwiceConverges(t *testing.T) {
	svc, store := newScheduleFixture()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")
	vote(t, svc, candidates[1].ID, alice)

	first, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, chairman())
	require.NoError(t, err)

	second, err := svc.ClosePoll(context.Background(), *candidates[0].BatchID, chairman())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rows, err := store.Attendances().GetBySchedule(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestClosePollKeepsEditedAttendance(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")
	vote(t, svc, candidates[1].ID, alice)

	// Attendance already adjusted by hand, e.g. alice arrived late last time
	// this was resolved. A re-run must not reset it.
	require.NoError(t, store.Attendances().UpsertAll(ctx, []*domain.Attendance{{
		ScheduleID: candidates[1].ID,
		MemberID:   alice,
		Late:       true,
		CreatedAt:  time.Now(),
	}}))

	_, err := svc.ClosePoll(ctx, *candidates[0].BatchID, chairman())
	require.NoError(t, err)

	row, ok := store.AttendanceState(domain.VoteKey{ScheduleID: candidates[1].ID, MemberID: alice})
	require.True(t, ok)
	assert.True(t, row.Late)
}

func TestToggleVoteFlips(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")

	voted, err := svc.ToggleVote(ctx, candidates[0].ID, alice)
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = svc.ToggleVote(ctx, candidates[0].ID, alice)
	require.NoError(t, err)
	assert.False(t, voted)

	exists, err := store.Votes().Exists(ctx, domain.VoteKey{ScheduleID: candidates[0].ID, MemberID: alice})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestToggleVoteOnClosedSchedule(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")

	_, err := svc.ClosePoll(ctx, *candidates[0].BatchID, chairman())
	require.NoError(t, err)

	_, err = svc.ToggleVote(ctx, candidates[0].ID, alice)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteBatchRequiresClosedCandidates(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1))

	err := svc.DeleteBatch(ctx, *candidates[0].BatchID, chairman())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteBatchRemovesDependents(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	candidates := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")
	vote(t, svc, candidates[1].ID, alice)

	winner, err := svc.ClosePoll(ctx, *candidates[0].BatchID, chairman())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBatch(ctx, *candidates[0].BatchID, chairman()))

	for _, c := range candidates {
		_, ok := store.ScheduleState(c.ID)
		assert.False(t, ok)
	}
	exists, err := store.Votes().Exists(ctx, domain.VoteKey{ScheduleID: candidates[1].ID, MemberID: alice})
	require.NoError(t, err)
	assert.False(t, exists)
	_, ok := store.AttendanceState(domain.VoteKey{ScheduleID: winner.ID, MemberID: alice})
	assert.False(t, ok)
}

func TestDeleteBatchRequiresChairman(t *testing.T) {
	svc, _ := newScheduleFixture()

	candidates := createPoll(t, svc, day(0), day(1))

	err := svc.DeleteBatch(context.Background(), *candidates[0].BatchID, regularActor())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateBatchDedupesDates(t *testing.T) {
	svc, _ := newScheduleFixture()

	schedules := createPoll(t, svc, day(1), day(0), day(1))
	require.Len(t, schedules, 2)
	assert.Equal(t, day(0), schedules[0].Date, "candidates come back date ascending")
	assert.Equal(t, day(1), schedules[1].Date)
}

func TestCloseSingleMarksEventAndAttendance(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	schedule, err := svc.CreateSingle(ctx, day(4), "Friendly game", uuid.New())
	require.NoError(t, err)
	alice := seedMember(t, store, "alice")
	vote(t, svc, schedule.ID, alice)

	closed, err := svc.CloseSingle(ctx, schedule.ID, chairman())
	require.NoError(t, err)
	assert.True(t, closed.Closed)
	assert.True(t, closed.IsEvent)

	row, ok := store.AttendanceState(domain.VoteKey{ScheduleID: schedule.ID, MemberID: alice})
	require.True(t, ok)
	assert.False(t, row.Late)
}

func TestCloseSingleRejectsBatchCandidate(t *testing.T) {
	svc, _ := newScheduleFixture()

	candidates := createPoll(t, svc, day(0), day(1))

	_, err := svc.CloseSingle(context.Background(), candidates[0].ID, chairman())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStandingsGroupsAndOrders(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	closedPoll := createPoll(t, svc, day(0), day(1))
	alice := seedMember(t, store, "alice")
	vote(t, svc, closedPoll[1].ID, alice)
	_, err := svc.ClosePoll(ctx, *closedPoll[0].BatchID, chairman())
	require.NoError(t, err)

	openPoll := createPoll(t, svc, day(10), day(11))
	vote(t, svc, openPoll[0].ID, alice)

	standings, err := svc.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.False(t, standings[0].Closed, "open polls come first")
	assert.Equal(t, openPoll[0].BatchID, standings[0].BatchID)
	assert.Equal(t, 1, standings[0].Candidates[0].VoteCount)
	assert.Equal(t, "alice", standings[0].Candidates[0].Voters[0].DisplayName)

	assert.True(t, standings[1].Closed)
	require.NotNil(t, standings[1].Winner)
	assert.Equal(t, closedPoll[1].ID, standings[1].Winner.ID)
}
