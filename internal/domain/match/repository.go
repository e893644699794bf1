package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ReplaceByTournament(ctx context.Context, tournamentID string, matches []Match) error
	Update(ctx context.Context, item Match) error
}
