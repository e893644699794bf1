package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/standing"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/sourcegraph/conc/pool"
)

const (
	dashboardMaxGoroutines = 4
	dashboardTopStandings  = 5
)

type Dashboard struct {
	Role                 string           `json:"role"`
	RoleLabel            string           `json:"role_label"`
	Module               string           `json:"module"`
	TournamentCount      int              `json:"tournament_count"`
	ActiveTournaments    int              `json:"active_tournaments"`
	LiveMatches          int              `json:"live_matches"`
	UpcomingMatches      int              `json:"upcoming_matches"`
	SelectedTournamentID string           `json:"selected_tournament_id,omitempty"`
	TopStandings         []standing.Entry `json:"top_standings"`
	PendingSpirit        int              `json:"pending_spirit,omitempty"`
}

type dashboardStandingsProvider interface {
	Leaderboard(ctx context.Context, tournamentID string) ([]standing.Entry, error)
}

type dashboardSpiritProvider interface {
	Pending(ctx context.Context, tournamentID string) ([]PendingSpirit, error)
}

type DashboardService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	standingSvc    dashboardStandingsProvider
	spiritSvc      dashboardSpiritProvider
	now            func() time.Time
}

func NewDashboardService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	standingSvc dashboardStandingsProvider,
	spiritSvc dashboardSpiritProvider,
) *DashboardService {
	return &DashboardService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		standingSvc:    standingSvc,
		spiritSvc:      spiritSvc,
		now:            time.Now,
	}
}

// Get assembles the dashboard for principal. Match counts are gathered per
// tournament concurrently; the leaderboard and pending spirit count are
// loaded for the selected tournament only.
func (s *DashboardService) Get(ctx context.Context, principal user.Principal, tournamentID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list tournaments: %w", err)
	}

	out := Dashboard{
		Role:            principal.Role,
		RoleLabel:       role.Label(principal.Role),
		Module:          role.ModuleFor(principal.Role),
		TournamentCount: len(tournaments),
		TopStandings:    []standing.Entry{},
	}
	if len(tournaments) == 0 {
		return out, nil
	}

	selected, err := resolveDashboardTournament(tournaments, strings.TrimSpace(tournamentID))
	if err != nil {
		return Dashboard{}, err
	}
	out.SelectedTournamentID = selected.ID

	now := s.now().UTC()
	var live, upcoming, active atomic.Int64

	p := pool.New().WithContext(ctx).WithMaxGoroutines(dashboardMaxGoroutines).WithCancelOnError()
	for _, item := range tournaments {
		if item.Status == tournament.StatusInProgress {
			active.Add(1)
		}
		if item.Status != tournament.StatusInProgress && item.Status != tournament.StatusRegistrationClosed {
			continue
		}
		itemID := item.ID
		p.Go(func(ctx context.Context) error {
			matches, err := s.matchRepo.ListByTournament(ctx, itemID)
			if err != nil {
				return fmt.Errorf("list matches for dashboard tournament=%s: %w", itemID, err)
			}
			for _, m := range matches {
				switch {
				case m.IsLive():
					live.Add(1)
				case m.IsUpcoming(now):
					upcoming.Add(1)
				}
			}
			return nil
		})
	}

	var top []standing.Entry
	if s.standingSvc != nil {
		p.Go(func(ctx context.Context) error {
			entries, err := s.standingSvc.Leaderboard(ctx, selected.ID)
			if err != nil {
				return fmt.Errorf("get leaderboard for dashboard: %w", err)
			}
			if len(entries) > dashboardTopStandings {
				entries = entries[:dashboardTopStandings]
			}
			top = entries
			return nil
		})
	}

	var pending int
	if s.spiritSvc != nil && role.Any(principal.Role, role.TournamentDirector, role.ScoringTeam) {
		p.Go(func(ctx context.Context) error {
			items, err := s.spiritSvc.Pending(ctx, selected.ID)
			if err != nil {
				return fmt.Errorf("list pending spirit for dashboard: %w", err)
			}
			pending = len(items)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	out.ActiveTournaments = int(active.Load())
	out.LiveMatches = int(live.Load())
	out.UpcomingMatches = int(upcoming.Load())
	out.PendingSpirit = pending
	if top != nil {
		out.TopStandings = top
	}
	return out, nil
}

// resolveDashboardTournament prefers the requested tournament, then the first
// one in progress, then the first listed.
func resolveDashboardTournament(items []tournament.Tournament, requested string) (tournament.Tournament, error) {
	if requested != "" {
		for _, item := range items {
			if item.ID == requested {
				return item, nil
			}
		}
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, requested)
	}

	for _, item := range items {
		if item.Status == tournament.StatusInProgress {
			return item, nil
		}
	}
	return items[0], nil
}
