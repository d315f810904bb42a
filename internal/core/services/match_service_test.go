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

type fakeMatchRepo struct {
	matches map[uuid.UUID]*domain.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[uuid.UUID]*domain.Match)}
}

func (r *fakeMatchRepo) Save(ctx context.Context, match *domain.Match) error {
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

func (r *fakeMatchRepo) GetAll(ctx context.Context) ([]*domain.Match, error) {
	out := make([]*domain.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) GetParticipantsByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.MatchParticipant, error) {
	var out []*domain.MatchParticipant
	for _, m := range r.matches {
		for _, p := range m.Participants {
			if p.MemberID == memberID {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.matches, id)
	return nil
}

func newMatchFixture() (ports.MatchService, *fakeMatchRepo, *memory.Store) {
	store := memory.NewStore()
	repo := newFakeMatchRepo()
	return NewMatchService(repo, store.Members()), repo, store
}

func matchInput(creator uuid.UUID, scoreA, scoreB int) ports.CreateMatchInput {
	return ports.CreateMatchInput{
		Date:      time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		TeamAName: "Smashers",
		TeamBName: "Netters",
		TeamA:     []uuid.UUID{uuid.New(), uuid.New()},
		TeamB:     []uuid.UUID{uuid.New()},
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		Creator:   creator,
	}
}

func TestCreateMatchDerivesResults(t *testing.T) {
	svc, _, _ := newMatchFixture()

	match, err := svc.Create(context.Background(), matchInput(uuid.New(), 21, 15))
	require.NoError(t, err)
	require.Len(t, match.Participants, 3)

	for _, p := range match.Participants {
		switch p.Team {
		case domain.TeamA:
			assert.Equal(t, domain.ResultWin, p.Result)
			assert.Equal(t, 21, p.ScoreFor)
			assert.Equal(t, 15, p.ScoreAgainst)
		case domain.TeamB:
			assert.Equal(t, domain.ResultLoss, p.Result)
			assert.Equal(t, 21, p.ScoreAgainst)
		}
	}
}

func TestCreateMatchDraw(t *testing.T) {
	svc, _, _ := newMatchFixture()

	match, err := svc.Create(context.Background(), matchInput(uuid.New(), 20, 20))
	require.NoError(t, err)
	for _, p := range match.Participants {
		assert.Equal(t, domain.ResultDraw, p.Result)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	svc, _, _ := newMatchFixture()
	ctx := context.Background()
	shared := uuid.New()

	cases := []struct {
		name   string
		mutate func(*ports.CreateMatchInput)
	}{
		{"missing team name", func(in *ports.CreateMatchInput) { in.TeamBName = "" }},
		{"empty team", func(in *ports.CreateMatchInput) { in.TeamA = nil }},
		{"oversized team", func(in *ports.CreateMatchInput) {
			in.TeamB = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		}},
		{"overlapping teams", func(in *ports.CreateMatchInput) {
			in.TeamA = []uuid.UUID{shared}
			in.TeamB = []uuid.UUID{shared}
		}},
		{"negative score", func(in *ports.CreateMatchInput) { in.ScoreA = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := matchInput(uuid.New(), 21, 15)
			tc.mutate(&input)
			_, err := svc.Create(ctx, input)
			assert.Error(t, err)
		})
	}
}

func TestMemberRecordAggregation(t *testing.T) {
	svc, _, _ := newMatchFixture()
	ctx := context.Background()
	player := uuid.New()

	games := []struct{ scoreFor, scoreAgainst int }{
		{21, 10}, {21, 19}, {12, 21}, {20, 20},
	}
	for _, g := range games {
		input := matchInput(uuid.New(), g.scoreFor, g.scoreAgainst)
		input.TeamA = []uuid.UUID{player}
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	record, err := svc.MemberRecord(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 4, record.Games)
	assert.Equal(t, 2, record.Wins)
	assert.Equal(t, 1, record.Losses)
	assert.Equal(t, 1, record.Draws)
}

func TestDeleteMatchAuthorization(t *testing.T) {
	svc, repo, _ := newMatchFixture()
	ctx := context.Background()
	creator := uuid.New()

	match, err := svc.Create(ctx, matchInput(creator, 21, 15))
	require.NoError(t, err)

	err = svc.Delete(ctx, match.ID, regularActor())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.Delete(ctx, match.ID, domain.Actor{ID: creator, Position: "member"}))
	_, ok := repo.matches[match.ID]
	assert.False(t, ok)
}

func TestDeleteMatchByChairman(t *testing.T) {
	svc, _, _ := newMatchFixture()
	ctx := context.Background()

	match, err := svc.Create(ctx, matchInput(uuid.New(), 21, 15))
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, match.ID, chairman()))
}

func TestDeleteMatchNotFound(t *testing.T) {
	svc, _, _ := newMatchFixture()

	err := svc.Delete(context.Background(), uuid.New(), chairman())
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}
