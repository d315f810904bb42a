package memory

import (
	"context"
	"sort"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/google/uuid"
)

type MemberRepo struct {
	store *Store
}

func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.members {
		if m.Email == email && m.DeletedAt == nil {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.members[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *MemberRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.Member
	for _, id := range ids {
		if m, ok := r.store.members[id]; ok && m.DeletedAt == nil {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *MemberRepo) GetAll(ctx context.Context) ([]*domain.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.Member
	for _, m := range r.store.members {
		if m.DeletedAt == nil {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *MemberRepo) Create(ctx context.Context, member *domain.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	copied := *member
	r.store.members[member.ID] = &copied
	return nil
}

func (r *MemberRepo) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, position string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.writes++
	if m, ok := r.store.members[id]; ok {
		m.Nickname = nickname
		m.Position = position
	}
	return nil
}
