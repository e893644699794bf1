package memory

import (
	"context"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
)

type spiritKey struct {
	matchID string
	teamID  string
}

type SpiritRepository struct {
	mu    sync.RWMutex
	items []spirit.Score
	seen  map[spiritKey]struct{}
}

func NewSpiritRepository(scores []spirit.Score) *SpiritRepository {
	repo := &SpiritRepository{
		items: make([]spirit.Score, 0, len(scores)),
		seen:  make(map[spiritKey]struct{}, len(scores)),
	}
	for _, item := range scores {
		repo.seen[spiritKey{matchID: item.MatchID, teamID: item.ScoringTeamID}] = struct{}{}
		repo.items = append(repo.items, item)
	}

	return repo
}

func (r *SpiritRepository) ListByTournament(_ context.Context, tournamentID string) ([]spirit.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]spirit.Score, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *SpiritRepository) ListByMatch(_ context.Context, matchID string) ([]spirit.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]spirit.Score, 0, 2)
	for _, item := range r.items {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *SpiritRepository) Create(_ context.Context, item spirit.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := spiritKey{matchID: item.MatchID, teamID: item.ScoringTeamID}
	if _, exists := r.seen[key]; exists {
		return spirit.ErrDuplicateSubmission
	}
	r.seen[key] = struct{}{}
	r.items = append(r.items, item)
	return nil
}
