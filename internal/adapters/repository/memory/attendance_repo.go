package memory

import (
	"context"
	"sort"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type AttendanceRepo struct {
	store *Store
}

func (r *AttendanceRepo) UpsertAll(ctx context.Context, rows []*domain.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, a := range rows {
		if _, ok := r.store.attendances[a.Key()]; ok {
			continue
		}
		copied := *a
		r.store.attendances[a.Key()] = &copied
	}
	return nil
}

func (r *AttendanceRepo) GetBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*domain.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.Attendance
	for _, a := range r.store.attendances {
		if a.ScheduleID == scheduleID {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID.String() < out[j].MemberID.String() })
	return out, nil
}

func (r *AttendanceRepo) DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	for _, id := range scheduleIDs {
		for key := range r.store.attendances {
			if key.ScheduleID == id {
				delete(r.store.attendances, key)
			}
		}
	}
	return nil
}
