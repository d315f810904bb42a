// Package memory provides map-backed repositories for service-level tests,
// mirroring the behavior of the postgres adapters without a live database.
package memory

import (
	"sort"
	"sync"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

// Store holds the shared state behind the per-interface repositories so a
// test can wire all of them against a single dataset.
type Store struct {
	mu sync.RWMutex

	members     map[uuid.UUID]*domain.Member
	schedules   map[uuid.UUID]*domain.Schedule
	votes       map[domain.VoteKey]*domain.ScheduleVote
	attendances map[domain.VoteKey]*domain.Attendance

	writes int
}

func NewStore() *Store {
	return &Store{
		members:     make(map[uuid.UUID]*domain.Member),
		schedules:   make(map[uuid.UUID]*domain.Schedule),
		votes:       make(map[domain.VoteKey]*domain.ScheduleVote),
		attendances: make(map[domain.VoteKey]*domain.Attendance),
	}
}

func (s *Store) Members() *MemberRepo         { return &MemberRepo{store: s} }
func (s *Store) Schedules() *ScheduleRepo     { return &ScheduleRepo{store: s} }
func (s *Store) Votes() *VoteRepo             { return &VoteRepo{store: s} }
func (s *Store) Attendances() *AttendanceRepo { return &AttendanceRepo{store: s} }

// Writes counts mutating calls, so tests can assert that rejected
// operations touched nothing.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// ScheduleState returns a copy of the stored schedule, bypassing the
// repository surface for assertions.
func (s *Store) ScheduleState(id uuid.UUID) (domain.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sch, ok := s.schedules[id]
	if !ok {
		return domain.Schedule{}, false
	}
	return *sch, true
}

// AttendanceState returns a copy of the stored attendance row, if any.
func (s *Store) AttendanceState(key domain.VoteKey) (domain.Attendance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attendances[key]
	if !ok {
		return domain.Attendance{}, false
	}
	return *a, true
}

func sortedSchedulesByDate(in []*domain.Schedule) []*domain.Schedule {
	sort.Slice(in, func(i, j int) bool { return in[i].Date.Before(in[j].Date) })
	return in
}
