package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

type MatchRepository struct {
	mu           sync.RWMutex
	items        map[string]match.Match
	byTournament map[string][]string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	repo := &MatchRepository{
		items:        make(map[string]match.Match, len(matches)),
		byTournament: make(map[string][]string),
	}
	for _, m := range matches {
		repo.items[m.ID] = cloneMatch(m)
		repo.byTournament[m.TournamentID] = append(repo.byTournament[m.TournamentID], m.ID)
	}

	return repo
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byTournament[tournamentID]
	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneMatch(r.items[id]))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

// ReplaceByTournament drops every stored match of the tournament and stores matches in order.
func (r *MatchRepository) ReplaceByTournament(_ context.Context, tournamentID string, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byTournament[tournamentID] {
		delete(r.items, id)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.ID == "" {
			return fmt.Errorf("match id is required")
		}
		m.TournamentID = tournamentID
		r.items[m.ID] = cloneMatch(m)
		ids = append(ids, m.ID)
	}
	r.byTournament[tournamentID] = ids

	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("match %s not found", item.ID)
	}
	r.items[item.ID] = cloneMatch(item)
	return nil
}

func cloneMatch(m match.Match) match.Match {
	if m.ScheduledTime != nil {
		at := *m.ScheduledTime
		m.ScheduledTime = &at
	}
	return m
}
