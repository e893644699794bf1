package memory

import (
	"context"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
)

type MediaRepository struct {
	mu    sync.RWMutex
	items []media.Asset
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{}
}

func (r *MediaRepository) ListByTournament(_ context.Context, tournamentID string) ([]media.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]media.Asset, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MediaRepository) Create(_ context.Context, item media.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}
