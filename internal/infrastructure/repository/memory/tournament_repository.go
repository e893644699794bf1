package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
)

type TournamentRepository struct {
	mu     sync.RWMutex
	items  map[string]tournament.Tournament
	orders []string
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	items := make(map[string]tournament.Tournament, len(tournaments))
	orders := make([]string, 0, len(tournaments))

	for _, t := range tournaments {
		items[t.ID] = cloneTournament(t)
		orders = append(orders, t.ID)
	}

	return &TournamentRepository{
		items:  items,
		orders: orders,
	}
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneTournament(r.items[id]))
	}

	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}

	return cloneTournament(t), true, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("tournament %s already exists", item.ID)
	}
	r.items[item.ID] = cloneTournament(item)
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("tournament %s not found", item.ID)
	}
	r.items[item.ID] = cloneTournament(item)
	return nil
}

func cloneTournament(t tournament.Tournament) tournament.Tournament {
	t.AgeDivisions = slices.Clone(t.AgeDivisions)
	if t.RegistrationDeadline != nil {
		deadline := *t.RegistrationDeadline
		t.RegistrationDeadline = &deadline
	}
	return t
}
