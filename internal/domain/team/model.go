package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a squad that registers for tournaments under a manager.
type Team struct {
	ID          string
	Name        string
	AgeDivision string
	City        string
	ManagerID   string
	CreatedAt   time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if len(strings.TrimSpace(t.Name)) < 2 {
		return fmt.Errorf("team name must be at least 2 characters")
	}
	if t.AgeDivision == "" {
		return fmt.Errorf("team age division is required")
	}

	return nil
}
