package memory

import (
	"context"
	"sort"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type VoteRepo struct {
	store *Store
}

func (r *VoteRepo) GetBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) ([]*domain.ScheduleVote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(scheduleIDs))
	for _, id := range scheduleIDs {
		wanted[id] = true
	}
	var out []*domain.ScheduleVote
	for _, v := range r.store.votes {
		if wanted[v.ScheduleID] {
			copied := *v
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduleID != out[j].ScheduleID {
			return out[i].ScheduleID.String() < out[j].ScheduleID.String()
		}
		return out[i].MemberID.String() < out[j].MemberID.String()
	})
	return out, nil
}

func (r *VoteRepo) Exists(ctx context.Context, key domain.VoteKey) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.votes[key]
	return ok, nil
}

func (r *VoteRepo) Insert(ctx context.Context, vote *domain.ScheduleVote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	if _, ok := r.store.votes[vote.Key()]; ok {
		return nil
	}
	copied := *vote
	r.store.votes[vote.Key()] = &copied
	return nil
}

func (r *VoteRepo) Delete(ctx context.Context, key domain.VoteKey) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	delete(r.store.votes, key)
	return nil
}

func (r *VoteRepo) DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, id := range scheduleIDs {
		for key := range r.store.votes {
			if key.ScheduleID == id {
				delete(r.store.votes, key)
			}
		}
	}
	return nil
}
