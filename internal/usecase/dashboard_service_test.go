package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
)

func TestDashboardService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, time.November, 14, 12, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)

	tournaments := []tournament.Tournament{
		{ID: "t-draft", Status: tournament.StatusDraft},
		{ID: "t-live", Status: tournament.StatusInProgress},
	}
	matches := []match.Match{
		{ID: "m-1", TournamentID: "t-live", Team1ID: "a", Team2ID: "b", Status: match.StatusCompleted, Team1Score: 15, Team2Score: 9, WinnerID: "a"},
		{ID: "m-2", TournamentID: "t-live", Team1ID: "a", Team2ID: "c", Status: match.StatusInProgress},
		{ID: "m-3", TournamentID: "t-live", Team1ID: "b", Team2ID: "c", Status: match.StatusScheduled, ScheduledTime: &later},
	}

	tournamentRepo := memory.NewTournamentRepository(tournaments)
	registrationRepo := memory.NewRegistrationRepository(approvedRegistrations("t-live", "a", "b", "c"))
	matchRepo := memory.NewMatchRepository(matches)
	standingSvc := NewStandingService(tournamentRepo, registrationRepo, matchRepo)
	spiritSvc := NewSpiritService(tournamentRepo, matchRepo, memory.NewSpiritRepository(nil), &sequenceIDGenerator{}, nil)

	service := NewDashboardService(tournamentRepo, matchRepo, standingSvc, spiritSvc)
	service.now = func() time.Time { return now }

	got, err := service.Get(ctx, user.Principal{UserID: "u-1", Role: role.TournamentDirector}, "")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if got.SelectedTournamentID != "t-live" {
		t.Fatalf("unexpected selected tournament: %s", got.SelectedTournamentID)
	}
	if got.TournamentCount != 2 || got.ActiveTournaments != 1 {
		t.Fatalf("unexpected tournament counts: %+v", got)
	}
	if got.LiveMatches != 1 || got.UpcomingMatches != 1 {
		t.Fatalf("unexpected match counts: live=%d upcoming=%d", got.LiveMatches, got.UpcomingMatches)
	}
	if len(got.TopStandings) != 3 || got.TopStandings[0].TeamID != "a" {
		t.Fatalf("unexpected standings: %+v", got.TopStandings)
	}
	if got.PendingSpirit != 2 {
		t.Fatalf("unexpected pending spirit: got=%d want=2", got.PendingSpirit)
	}
	if got.RoleLabel != "Tournament Director" || got.Module != role.ModuleTournament {
		t.Fatalf("unexpected role info: %s %s", got.RoleLabel, got.Module)
	}

	spectator, err := service.Get(ctx, user.Principal{UserID: "u-2", Role: role.Spectator}, "t-live")
	if err != nil {
		t.Fatalf("get spectator dashboard: %v", err)
	}
	if spectator.PendingSpirit != 0 {
		t.Fatalf("spectator should not see pending spirit: %d", spectator.PendingSpirit)
	}
}

func TestResolveDashboardTournament(t *testing.T) {
	t.Parallel()

	items := []tournament.Tournament{
		{ID: "t-1", Status: tournament.StatusDraft},
		{ID: "t-2", Status: tournament.StatusInProgress},
	}

	t.Run("prefers requested tournament", func(t *testing.T) {
		got, err := resolveDashboardTournament(items, "t-1")
		if err != nil || got.ID != "t-1" {
			t.Fatalf("unexpected result: id=%s err=%v", got.ID, err)
		}
	})

	t.Run("falls back to tournament in progress", func(t *testing.T) {
		got, err := resolveDashboardTournament(items, "")
		if err != nil || got.ID != "t-2" {
			t.Fatalf("unexpected result: id=%s err=%v", got.ID, err)
		}
	})

	t.Run("unknown requested tournament", func(t *testing.T) {
		_, err := resolveDashboardTournament(items, "t-9")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
