package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
)

func newStandingFixture() *StandingService {
	matches := []match.Match{
		{ID: "m-1", TournamentID: "t-1", Team1ID: "a", Team2ID: "b", Status: match.StatusCompleted, Team1Score: 15, Team2Score: 10, WinnerID: "a"},
		{ID: "m-2", TournamentID: "t-1", Team1ID: "b", Team2ID: "c", Status: match.StatusCompleted, Team1Score: 15, Team2Score: 14, WinnerID: "b"},
		{ID: "m-3", TournamentID: "t-1", Team1ID: "a", Team2ID: "c", Status: match.StatusInProgress, Team1Score: 3, Team2Score: 7},
	}

	return NewStandingService(
		memory.NewTournamentRepository([]tournament.Tournament{{ID: "t-1", Status: tournament.StatusInProgress}}),
		memory.NewRegistrationRepository(approvedRegistrations("t-1", "a", "b", "c")),
		memory.NewMatchRepository(matches),
	)
}

func TestStandingService_Leaderboard(t *testing.T) {
	t.Parallel()

	got, err := newStandingFixture().Leaderboard(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected entry count: got=%d want=3", len(got))
	}

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if got[i].TeamID != want || got[i].Position != i+1 {
			t.Fatalf("unexpected entry %d: team=%s position=%d", i, got[i].TeamID, got[i].Position)
		}
	}
	if got[0].Points != 3 || got[0].Played != 1 {
		t.Fatalf("live match counted for leader: %+v", got[0].Stats)
	}
}

func TestStandingService_TeamStats(t *testing.T) {
	t.Parallel()

	service := newStandingFixture()
	got, err := service.TeamStats(context.Background(), "t-1", "b")
	if err != nil {
		t.Fatalf("team stats: %v", err)
	}
	if got.Wins != 1 || got.Losses != 1 || got.PointsFor != 25 || got.PointsAgainst != 29 {
		t.Fatalf("unexpected stats: %+v", got)
	}

	if _, err := service.TeamStats(context.Background(), "t-1", "z"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unregistered team, got %v", err)
	}
}
