package team

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MaxJerseyNumber   = 99
	maxPlayerNameLen  = 100
	maxPositionLength = 40
)

// ErrPlayerAlreadyRostered is returned when a registered user is already on a
// team roster, or a jersey number is taken within the team.
var ErrPlayerAlreadyRostered = errors.New("player already rostered")

// Player is one roster entry. UserID is empty for players added by name only.
type Player struct {
	ID           string
	TeamID       string
	UserID       string
	Name         string
	JerseyNumber *int
	Position     string
	CreatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("player name is required")
	}
	if len(name) > maxPlayerNameLen {
		return fmt.Errorf("player name must be at most %d characters", maxPlayerNameLen)
	}
	if p.JerseyNumber != nil && (*p.JerseyNumber < 0 || *p.JerseyNumber > MaxJerseyNumber) {
		return fmt.Errorf("jersey number must be between 0 and %d", MaxJerseyNumber)
	}
	if len(p.Position) > maxPositionLength {
		return fmt.Errorf("position must be at most %d characters", maxPositionLength)
	}

	return nil
}

// ManagedBy reports whether userID manages the team.
func (t Team) ManagedBy(userID string) bool {
	return t.ManagerID != "" && t.ManagerID == userID
}

// SortRoster orders players by jersey number, numberless players last, then by name.
func SortRoster(players []Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		switch {
		case a.JerseyNumber != nil && b.JerseyNumber != nil && *a.JerseyNumber != *b.JerseyNumber:
			return *a.JerseyNumber < *b.JerseyNumber
		case a.JerseyNumber != nil && b.JerseyNumber == nil:
			return true
		case a.JerseyNumber == nil && b.JerseyNumber != nil:
			return false
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// JerseyTaken reports whether number is already worn on roster.
func JerseyTaken(roster []Player, number *int) bool {
	if number == nil {
		return false
	}
	for _, p := range roster {
		if p.JerseyNumber != nil && *p.JerseyNumber == *number {
			return true
		}
	}
	return false
}
