package bracket

import (
	"errors"
	"testing"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRoundRobin_FourTeams(t *testing.T) {
	t.Parallel()

	got := RoundRobin([]string{"A", "B", "C", "D"}, 2)
	if len(got) != 6 {
		t.Fatalf("unexpected match count: got=%d want=6", len(got))
	}

	seen := make(map[string]int)
	perRound := make(map[int]map[string]struct{})
	for i, m := range got {
		if m.Team1ID == m.Team2ID {
			t.Fatalf("team paired with itself: %+v", m)
		}
		seen[pairKey(m.Team1ID, m.Team2ID)]++
		if m.RoundNumber < 1 || m.RoundNumber > 3 {
			t.Fatalf("unexpected round number: %d", m.RoundNumber)
		}
		if perRound[m.RoundNumber] == nil {
			perRound[m.RoundNumber] = make(map[string]struct{})
		}
		for _, team := range []string{m.Team1ID, m.Team2ID} {
			if _, dup := perRound[m.RoundNumber][team]; dup {
				t.Fatalf("team %s plays twice in round %d", team, m.RoundNumber)
			}
			perRound[m.RoundNumber][team] = struct{}{}
		}
		if want := i%2 + 1; m.FieldNumber != want {
			t.Fatalf("match %d field=%d want=%d", i, m.FieldNumber, want)
		}
		if m.Status != match.StatusScheduled || m.BracketType != match.BracketRoundRobin {
			t.Fatalf("unexpected match attributes: %+v", m)
		}
	}
	for key, count := range seen {
		if count != 1 {
			t.Fatalf("pair %s scheduled %d times", key, count)
		}
	}
	if got[0].RoundName != "Round 1" || got[0].MatchNumber != 1 || got[1].MatchNumber != 2 {
		t.Fatalf("unexpected numbering: %+v %+v", got[0], got[1])
	}
}

func TestRoundRobin_OddCountSitsOneTeamOut(t *testing.T) {
	t.Parallel()

	got := RoundRobin([]string{"A", "B", "C", "D", "E"}, 0)
	if len(got) != 10 {
		t.Fatalf("unexpected match count: got=%d want=10", len(got))
	}

	rounds := make(map[int]int)
	for _, m := range got {
		rounds[m.RoundNumber]++
		if m.FieldNumber != 1 {
			t.Fatalf("expected single field fallback, got %d", m.FieldNumber)
		}
	}
	if len(rounds) != 5 {
		t.Fatalf("unexpected round count: %d", len(rounds))
	}
	for round, count := range rounds {
		if count != 2 {
			t.Fatalf("round %d has %d matches, want 2", round, count)
		}
	}
}

func TestGenerators_TooFewTeams(t *testing.T) {
	t.Parallel()

	if got := RoundRobin([]string{"A"}, 1); len(got) != 0 {
		t.Fatalf("expected no round robin matches, got %d", len(got))
	}
	if got := SingleElimination(nil); len(got) != 0 {
		t.Fatalf("expected no elimination matches, got %d", len(got))
	}
}

func TestSingleElimination_FiveTeams(t *testing.T) {
	t.Parallel()

	got := SingleElimination([]string{"A", "B", "C", "D", "E"})

	var round1, byes, finals int
	names := make(map[int]string)
	for _, m := range got {
		names[m.RoundNumber] = m.RoundName
		if m.IsFinal {
			finals++
			if m.RoundNumber != 3 {
				t.Fatalf("final flagged outside last round: %+v", m)
			}
		}
		if m.RoundNumber != 1 {
			if m.Team1ID != "" || m.Team2ID != "" {
				t.Fatalf("later round should be a placeholder: %+v", m)
			}
			continue
		}
		round1++
		if m.IsBye() {
			byes++
		}
	}

	if round1 != 4 || byes != 3 {
		t.Fatalf("unexpected first round: matches=%d byes=%d", round1, byes)
	}
	if finals != 1 {
		t.Fatalf("expected one final, got %d", finals)
	}
	if names[1] != "Quarterfinals" || names[2] != "Semifinals" || names[3] != "Final" {
		t.Fatalf("unexpected round names: %v", names)
	}
	if got[0].Team1ID != "A" || got[0].Team2ID != "B" || got[0].Status != match.StatusScheduled {
		t.Fatalf("unexpected opening match: %+v", got[0])
	}
}

func TestSingleElimination_TwoTeams(t *testing.T) {
	t.Parallel()

	got := SingleElimination([]string{"A", "B"})
	if len(got) != 1 {
		t.Fatalf("unexpected match count: %d", len(got))
	}
	if got[0].RoundName != "Final" || got[0].IsFinal {
		t.Fatalf("unexpected two-team bracket: %+v", got[0])
	}
}

func TestAdvanceWinners(t *testing.T) {
	t.Parallel()

	matches := SingleElimination([]string{"A", "B", "C", "D", "E"})
	matches[0].Status = match.StatusCompleted
	matches[0].WinnerID = "B"

	changed := AdvanceWinners(matches)
	if len(changed) != 2 {
		t.Fatalf("expected two semifinals to change, got %d", len(changed))
	}
	if changed[0].Team1ID != "B" || changed[0].Team2ID != "C" {
		t.Fatalf("unexpected first semifinal: %+v", changed[0])
	}
	if changed[1].Team1ID != "D" || changed[1].Team2ID != "E" {
		t.Fatalf("unexpected second semifinal: %+v", changed[1])
	}

	if again := AdvanceWinners(matches); len(again) != 0 {
		t.Fatalf("expected idempotent advance, got %d changes", len(again))
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	if _, err := Generate("swiss", []string{"A", "B"}, 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRoundNameAndSize(t *testing.T) {
	t.Parallel()

	if BracketSize(5) != 8 || BracketSize(8) != 8 || BracketSize(2) != 2 {
		t.Fatalf("unexpected bracket sizes")
	}
	if TotalRounds(16) != 4 {
		t.Fatalf("unexpected total rounds: %d", TotalRounds(16))
	}
	if got := RoundName(1, 16); got != "Round 1" {
		t.Fatalf("unexpected round name: %q", got)
	}
	if EstimatedMatches(match.BracketRoundRobin, 6) != 15 || EstimatedMatches(match.BracketElimination, 6) != 5 {
		t.Fatalf("unexpected estimates")
	}
}
