package standing

import (
	"reflect"
	"testing"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

func completed(t1, t2 string, s1, s2 int, winner string) match.Match {
	return match.Match{
		Team1ID:    t1,
		Team2ID:    t2,
		Team1Score: s1,
		Team2Score: s2,
		WinnerID:   winner,
		Status:     match.StatusCompleted,
	}
}

func TestForTeam(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		completed("A", "B", 15, 10, "A"),
		completed("C", "A", 13, 11, "C"),
		completed("A", "D", 9, 9, ""),
		{Team1ID: "A", Team2ID: "E", Team1Score: 4, Status: match.StatusInProgress},
	}

	got := ForTeam(matches, "A")
	want := Stats{
		TeamID:        "A",
		Played:        3,
		Wins:          1,
		Losses:        1,
		Ties:          1,
		PointsFor:     35,
		PointsAgainst: 32,
		PointDiff:     3,
		Points:        4,
		WinRate:       33,
	}
	if got != want {
		t.Fatalf("unexpected stats:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestForTeam_Empty(t *testing.T) {
	t.Parallel()

	got := ForTeam(nil, "A")
	if got.Played != 0 || got.WinRate != 0 || got.Points != 0 {
		t.Fatalf("expected zero stats, got %+v", got)
	}
	if got := ForTeam([]match.Match{completed("A", "B", 1, 0, "A")}, ""); got.Played != 0 {
		t.Fatalf("expected zero stats for empty team id, got %+v", got)
	}
}

func TestLeaderboard_TieBreaks(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		completed("B", "X", 18, 12, "B"),
		completed("A", "Y", 20, 10, "A"),
		completed("C", "Z", 20, 14, "C"),
	}

	got := Leaderboard(matches, []string{"B", "C", "A"})
	order := []string{got[0].TeamID, got[1].TeamID, got[2].TeamID}
	if !reflect.DeepEqual(order, []string{"A", "C", "B"}) {
		t.Fatalf("unexpected order: %v", order)
	}
	for i, entry := range got {
		if entry.Position != i+1 {
			t.Fatalf("unexpected position for %s: %d", entry.TeamID, entry.Position)
		}
	}

	again := Leaderboard(matches, []string{"B", "C", "A"})
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("leaderboard is not deterministic")
	}
}

func TestLeaderboard_StableForFullTies(t *testing.T) {
	t.Parallel()

	got := Leaderboard(nil, []string{"Q", "P", "R"})
	if got[0].TeamID != "Q" || got[1].TeamID != "P" || got[2].TeamID != "R" {
		t.Fatalf("expected input order, got %s %s %s", got[0].TeamID, got[1].TeamID, got[2].TeamID)
	}
}

func TestLeaderboard_WinsBreakRemainingTie(t *testing.T) {
	t.Parallel()

	// P: one win and two losses; Q: three ties. Both have 3 points, 10-10 and diff 0.
	matches := []match.Match{
		completed("P", "X", 10, 0, "P"),
		completed("P", "Y", 0, 5, "Y"),
		completed("Z", "P", 5, 0, "Z"),
		completed("Q", "X", 5, 5, ""),
		completed("Y", "Q", 5, 5, ""),
		completed("Q", "Z", 0, 0, ""),
	}

	got := Leaderboard(matches, []string{"Q", "P"})
	if got[0].Points != got[1].Points || got[0].PointDiff != got[1].PointDiff || got[0].PointsFor != got[1].PointsFor {
		t.Fatalf("fixture should tie on the first three keys: %+v", got)
	}
	if got[0].TeamID != "P" || got[0].Position != 1 {
		t.Fatalf("expected the team with more wins first, got %+v", got)
	}
}
