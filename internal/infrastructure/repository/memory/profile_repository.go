package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewProfileRepository(profiles []user.Profile) *ProfileRepository {
	items := make(map[string]user.Profile, len(profiles))
	for _, p := range profiles {
		items[p.ID] = p
	}
	return &ProfileRepository{items: items}
}

func (r *ProfileRepository) GetByID(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	return p, ok, nil
}

func (r *ProfileRepository) ListPending(_ context.Context) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0)
	for _, p := range r.items {
		if p.Status() == user.ApprovalPending {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, item user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
