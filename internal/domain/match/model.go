package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	BracketRoundRobin  = "round_robin"
	BracketElimination = "elimination"
	BracketPool        = "pool"
	BracketPlacement   = "placement"
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultTie  = "tie"
)

var (
	ErrInvalidTransition = errors.New("invalid match status transition")
	ErrTiedResult        = errors.New("match cannot end in a tie")
)

// Match is one contest between two teams, or a placeholder slot in an
// elimination bracket whose teams are not known yet.
type Match struct {
	ID            string     `json:"id"`
	TournamentID  string     `json:"tournament_id"`
	RoundNumber   int        `json:"round_number"`
	RoundName     string     `json:"round_name"`
	MatchNumber   int        `json:"match_number"`
	Team1ID       string     `json:"team1_id,omitempty"`
	Team2ID       string     `json:"team2_id,omitempty"`
	BracketType   string     `json:"bracket_type"`
	FieldNumber   int        `json:"field_number"`
	FieldID       string     `json:"field_id,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	Status        string     `json:"status"`
	Team1Score    int        `json:"team1_score"`
	Team2Score    int        `json:"team2_score"`
	WinnerID      string     `json:"winner_id,omitempty"`
	IsFinal       bool       `json:"is_final"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (m Match) HasTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// IsBye reports whether the match was auto-completed because one slot had no opponent.
func (m Match) IsBye() bool {
	return m.Team1ID != "" && m.Team2ID == "" && m.Status == StatusCompleted && m.WinnerID == m.Team1ID
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

func (m Match) IsLive() bool {
	return m.Status == StatusInProgress
}

func (m Match) IsUpcoming(now time.Time) bool {
	if m.Status != StatusScheduled {
		return false
	}
	if m.ScheduledTime == nil {
		return true
	}
	return !m.ScheduledTime.Before(now)
}

// Scores returns the points scored by and against teamID.
func (m Match) Scores(teamID string) (int, int) {
	switch teamID {
	case "":
		return 0, 0
	case m.Team1ID:
		return m.Team1Score, m.Team2Score
	case m.Team2ID:
		return m.Team2Score, m.Team1Score
	default:
		return 0, 0
	}
}

// Opponent returns the other side of the match for teamID.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case "":
		return ""
	case m.Team1ID:
		return m.Team2ID
	case m.Team2ID:
		return m.Team1ID
	default:
		return ""
	}
}

// ResultFor classifies a completed match from the point of view of teamID.
// It returns an empty string when the match is not completed or the team did not play.
func (m Match) ResultFor(teamID string) string {
	if !m.IsCompleted() || !m.HasTeam(teamID) {
		return ""
	}
	switch {
	case m.WinnerID == teamID:
		return ResultWin
	case m.WinnerID != "":
		return ResultLoss
	default:
		return ResultTie
	}
}

// Start moves a scheduled match to in progress.
func (m Match) Start(now time.Time) (Match, error) {
	if m.Status != StatusScheduled {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, StatusInProgress)
	}
	if m.Team1ID == "" || m.Team2ID == "" {
		return m, fmt.Errorf("%w: both teams must be known before start", ErrInvalidTransition)
	}
	m.Status = StatusInProgress
	m.UpdatedAt = now
	return m, nil
}

// SetScore records the running score; negative values are clamped to zero.
func (m Match) SetScore(team1Score, team2Score int, now time.Time) (Match, error) {
	if m.Status != StatusInProgress {
		return m, fmt.Errorf("%w: score updates require %s, got %s", ErrInvalidTransition, StatusInProgress, m.Status)
	}
	m.Team1Score = max(team1Score, 0)
	m.Team2Score = max(team2Score, 0)
	m.UpdatedAt = now
	return m, nil
}

// End completes a live match and records the winner. Equal scores are refused.
func (m Match) End(now time.Time) (Match, error) {
	if m.Status != StatusInProgress {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, StatusCompleted)
	}
	if m.Team1Score == m.Team2Score {
		return m, fmt.Errorf("%w: %d-%d", ErrTiedResult, m.Team1Score, m.Team2Score)
	}
	m.WinnerID = m.Team1ID
	if m.Team2Score > m.Team1Score {
		m.WinnerID = m.Team2ID
	}
	m.Status = StatusCompleted
	m.UpdatedAt = now
	return m, nil
}

func (m Match) Cancel(now time.Time) (Match, error) {
	if m.Status == StatusCompleted || m.Status == StatusCancelled {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, StatusCancelled)
	}
	m.Status = StatusCancelled
	m.UpdatedAt = now
	return m, nil
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func StatusLabel(status string) string {
	switch NormalizeStatus(status) {
	case StatusScheduled:
		return "Scheduled"
	case StatusInProgress:
		return "Live"
	case StatusCompleted:
		return "Final"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
