package memory

import (
	"context"
	"sync"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	byTeam map[string][]team.Player
}

func NewPlayerRepository(players []team.Player) *PlayerRepository {
	byTeam := make(map[string][]team.Player)
	for _, p := range players {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}
	return &PlayerRepository{byTeam: byTeam}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]team.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]team.Player(nil), r.byTeam[teamID]...)
	team.SortRoster(out)
	return out, nil
}

func (r *PlayerRepository) TeamOfUser(_ context.Context, userID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID, ok := r.teamOfUserLocked(userID)
	return teamID, ok, nil
}

func (r *PlayerRepository) teamOfUserLocked(userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	for teamID, roster := range r.byTeam {
		for _, p := range roster {
			if p.UserID == userID {
				return teamID, true
			}
		}
	}
	return "", false
}

func (r *PlayerRepository) Create(_ context.Context, item team.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.teamOfUserLocked(item.UserID); taken {
		return team.ErrPlayerAlreadyRostered
	}
	r.byTeam[item.TeamID] = append(r.byTeam[item.TeamID], item)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, teamID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.byTeam[teamID]
	for i, p := range roster {
		if p.ID == playerID {
			r.byTeam[teamID] = append(roster[:i:i], roster[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
