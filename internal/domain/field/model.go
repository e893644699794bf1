package field

import (
	"context"
	"fmt"
	"strings"
)

// Field is a playing area available to a tournament.
type Field struct {
	ID           string
	TournamentID string
	Name         string
	Location     string
}

func (f Field) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("field id is required")
	}
	if f.TournamentID == "" {
		return fmt.Errorf("field tournament id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field name is required")
	}
	return nil
}

// IDs returns field ids in input order.
func IDs(items []Field) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

// Repository describes field persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Field, error)
	Create(ctx context.Context, item Field) error
}
