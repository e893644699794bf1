package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
)

type RegistrationRepository struct {
	mu     sync.RWMutex
	items  map[string]tournament.Registration
	orders []string
}

func NewRegistrationRepository(registrations []tournament.Registration) *RegistrationRepository {
	items := make(map[string]tournament.Registration, len(registrations))
	orders := make([]string, 0, len(registrations))
	for _, item := range registrations {
		items[item.ID] = item
		orders = append(orders, item.ID)
	}

	return &RegistrationRepository{
		items:  items,
		orders: orders,
	}
}

func (r *RegistrationRepository) ListByTournament(_ context.Context, tournamentID string) ([]tournament.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Registration, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RegistrationRepository) GetByID(_ context.Context, registrationID string) (tournament.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[registrationID]
	return item, ok, nil
}

func (r *RegistrationRepository) Create(_ context.Context, item tournament.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("registration %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *RegistrationRepository) Update(_ context.Context, item tournament.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("registration %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}
