package tournament

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"
)

const (
	StatusDraft              = "draft"
	StatusRegistrationOpen   = "registration_open"
	StatusRegistrationClosed = "registration_closed"
	StatusInProgress         = "in_progress"
	StatusCompleted          = "completed"
	StatusCancelled          = "cancelled"
)

const (
	FormatRoundRobin  = "round_robin"
	FormatElimination = "elimination"
	FormatPoolPlay    = "pool_play"
	FormatSwiss       = "swiss"
)

var (
	AgeDivisions = []string{"U10", "U12", "U14", "U17", "U20", "Open", "Mixed", "Women", "Masters"}
	Formats      = []string{FormatRoundRobin, FormatElimination, FormatPoolPlay, FormatSwiss}
)

var ErrInvalidTransition = errors.New("invalid tournament status transition")

// Tournament is an event teams register for and play matches in.
type Tournament struct {
	ID                   string
	Name                 string
	Description          string
	Location             string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline *time.Time
	MaxTeams             int
	AgeDivisions         []string
	Format               string
	Status               string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValidationError maps field names to human readable messages.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e[key]))
	}
	return "invalid tournament: " + strings.Join(parts, "; ")
}

func (t Tournament) Validate() error {
	errs := ValidationError{}

	if len(strings.TrimSpace(t.Name)) < 3 {
		errs["name"] = "Tournament name must be at least 3 characters"
	}
	if len(strings.TrimSpace(t.Location)) < 3 {
		errs["location"] = "Location is required"
	}
	if t.StartDate.IsZero() {
		errs["start_date"] = "Start date is required"
	}
	if t.EndDate.IsZero() {
		errs["end_date"] = "End date is required"
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		errs["end_date"] = "End date must be after start date"
	}
	if t.RegistrationDeadline != nil && !t.StartDate.IsZero() && !t.RegistrationDeadline.Before(t.StartDate) {
		errs["registration_deadline"] = "Registration deadline must be before start date"
	}
	if t.MaxTeams != 0 && t.MaxTeams < 2 {
		errs["max_teams"] = "Tournament must allow at least 2 teams"
	}
	if len(t.AgeDivisions) == 0 {
		errs["age_divisions"] = "At least one age division is required"
	}
	for _, division := range t.AgeDivisions {
		if !IsKnownAgeDivision(division) {
			errs["age_divisions"] = fmt.Sprintf("Unknown age division %q", division)
			break
		}
	}
	if !slices.Contains(Formats, t.Format) {
		errs["format"] = "Format must be one of " + strings.Join(Formats, ", ")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func IsKnownAgeDivision(value string) bool {
	return slices.Contains(AgeDivisions, value)
}

// CanRegister allows registration while open and not past the deadline.
func (t Tournament) CanRegister(now time.Time) bool {
	if t.Status != StatusRegistrationOpen {
		return false
	}
	if t.RegistrationDeadline != nil && t.RegistrationDeadline.Before(now) {
		return false
	}
	return true
}

// IsRegistrationOpen is the strict form of CanRegister: the deadline must lie after now.
func (t Tournament) IsRegistrationOpen(now time.Time) bool {
	if t.Status != StatusRegistrationOpen {
		return false
	}
	return t.RegistrationDeadline == nil || t.RegistrationDeadline.After(now)
}

// HasCapacity reports whether another team fits given the approved count.
func (t Tournament) HasCapacity(approved int) bool {
	return t.MaxTeams == 0 || approved < t.MaxTeams
}

// Progress describes where now sits relative to the tournament dates.
type Progress struct {
	Label   string
	Percent int
}

func (t Tournament) Progress(now time.Time) Progress {
	if now.Before(t.StartDate) {
		total := t.StartDate.Sub(t.CreatedAt)
		if total <= 0 {
			return Progress{Label: "Upcoming"}
		}
		elapsed := now.Sub(t.CreatedAt)
		pct := math.Min(math.Max(float64(elapsed)/float64(total)*100, 0), 100)
		return Progress{Label: "Upcoming", Percent: int(math.Round(pct))}
	}
	if now.After(t.EndDate) {
		return Progress{Label: "Completed", Percent: 100}
	}

	total := t.EndDate.Sub(t.StartDate)
	if total <= 0 {
		return Progress{Label: "In Progress", Percent: 100}
	}
	pct := float64(now.Sub(t.StartDate)) / float64(total) * 100
	return Progress{Label: "In Progress", Percent: int(math.Round(pct))}
}

var transitions = map[string][]string{
	StatusDraft:              {StatusRegistrationOpen, StatusCancelled},
	StatusRegistrationOpen:   {StatusRegistrationClosed, StatusCancelled},
	StatusRegistrationClosed: {StatusRegistrationOpen, StatusInProgress, StatusCancelled},
	StatusInProgress:         {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// TransitionTo returns the tournament in the target status.
func (t Tournament) TransitionTo(status string, now time.Time) (Tournament, error) {
	if !CanTransition(t.Status, status) {
		return t, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, status)
	}
	t.Status = status
	t.UpdatedAt = now
	return t, nil
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusDraft, StatusRegistrationOpen, StatusRegistrationClosed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// StatusLabel title-cases the underscore separated status.
func StatusLabel(status string) string {
	if status == "" {
		return "Unknown"
	}
	words := strings.Split(status, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
