package memory

import (
	"context"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
)

type FieldRepository struct {
	mu    sync.RWMutex
	items []field.Field
}

func NewFieldRepository(fields []field.Field) *FieldRepository {
	items := make([]field.Field, len(fields))
	copy(items, fields)
	return &FieldRepository{items: items}
}

func (r *FieldRepository) ListByTournament(_ context.Context, tournamentID string) ([]field.Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]field.Field, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *FieldRepository) Create(_ context.Context, item field.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}
