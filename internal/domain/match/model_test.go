package match

import (
	"errors"
	"testing"
	"time"
)

func TestMatch_ResultFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		match Match
		team  string
		want  string
	}{
		{
			name:  "winner",
			match: Match{Team1ID: "a", Team2ID: "b", Status: StatusCompleted, WinnerID: "a"},
			team:  "a",
			want:  ResultWin,
		},
		{
			name:  "loser",
			match: Match{Team1ID: "a", Team2ID: "b", Status: StatusCompleted, WinnerID: "a"},
			team:  "b",
			want:  ResultLoss,
		},
		{
			name:  "tie without winner",
			match: Match{Team1ID: "a", Team2ID: "b", Status: StatusCompleted},
			team:  "b",
			want:  ResultTie,
		},
		{
			name:  "not completed",
			match: Match{Team1ID: "a", Team2ID: "b", Status: StatusInProgress, WinnerID: "a"},
			team:  "a",
			want:  "",
		},
		{
			name:  "team not in match",
			match: Match{Team1ID: "a", Team2ID: "b", Status: StatusCompleted, WinnerID: "a"},
			team:  "c",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.ResultFor(tt.team); got != tt.want {
				t.Fatalf("ResultFor(%q)=%q want=%q", tt.team, got, tt.want)
			}
		})
	}
}

func TestMatch_Lifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	m := Match{ID: "m1", Team1ID: "a", Team2ID: "b", Status: StatusScheduled}

	m, err := m.Start(now)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if m.Status != StatusInProgress {
		t.Fatalf("unexpected status after start: %s", m.Status)
	}

	m, err = m.SetScore(-3, 7, now)
	if err != nil {
		t.Fatalf("set score: %v", err)
	}
	if m.Team1Score != 0 || m.Team2Score != 7 {
		t.Fatalf("unexpected scores: %d-%d", m.Team1Score, m.Team2Score)
	}

	m, err = m.End(now)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if m.WinnerID != "b" || m.Status != StatusCompleted {
		t.Fatalf("unexpected end state: winner=%s status=%s", m.WinnerID, m.Status)
	}

	if _, err := m.Cancel(now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition when cancelling completed match, got %v", err)
	}
}

func TestMatch_EndRefusesTie(t *testing.T) {
	t.Parallel()

	m := Match{Team1ID: "a", Team2ID: "b", Status: StatusInProgress, Team1Score: 9, Team2Score: 9}
	if _, err := m.End(time.Now()); !errors.Is(err, ErrTiedResult) {
		t.Fatalf("expected ErrTiedResult, got %v", err)
	}
}

func TestMatch_StartRequiresBothTeams(t *testing.T) {
	t.Parallel()

	m := Match{Team1ID: "a", Status: StatusScheduled}
	if _, err := m.Start(time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	if got := StatusLabel(" IN_PROGRESS "); got != "Live" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := StatusLabel(""); got != "Scheduled" {
		t.Fatalf("unexpected label for empty status: %q", got)
	}
}
