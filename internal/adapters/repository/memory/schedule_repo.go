package memory

import (
	"context"
	"sort"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type ScheduleRepo struct {
	store *Store
}

func (r *ScheduleRepo) SaveAll(ctx context.Context, schedules []*domain.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, sch := range schedules {
		copied := *sch
		r.store.schedules[sch.ID] = &copied
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sch, ok := r.store.schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	copied := *sch
	return &copied, nil
}

func (r *ScheduleRepo) GetByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.Schedule
	for _, sch := range r.store.schedules {
		if sch.InBatch(batchID) {
			copied := *sch
			out = append(out, &copied)
		}
	}
	return sortedSchedulesByDate(out), nil
}

func (r *ScheduleRepo) GetAll(ctx context.Context) ([]*domain.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.Schedule
	for _, sch := range r.store.schedules {
		copied := *sch
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ScheduleRepo) CloseBatch(ctx context.Context, batchID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, sch := range r.store.schedules {
		if sch.InBatch(batchID) {
			sch.Closed = true
		}
	}
	return nil
}

func (r *ScheduleRepo) CloseByID(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	if sch, ok := r.store.schedules[id]; ok && sch.BatchID == nil {
		sch.Closed = true
	}
	return nil
}

func (r *ScheduleRepo) MarkEvent(ctx context.Context, batchID uuid.UUID, winnerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, sch := range r.store.schedules {
		if sch.InBatch(batchID) {
			sch.IsEvent = sch.ID == winnerID
		}
	}
	return nil
}

func (r *ScheduleRepo) MarkEventByID(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	if sch, ok := r.store.schedules[id]; ok && sch.BatchID == nil {
		sch.IsEvent = true
	}
	return nil
}

func (r *ScheduleRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, id := range ids {
		delete(r.store.schedules, id)
	}
	return nil
}
