package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
}

// PlayerRepository stores team rosters.
type PlayerRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	// TeamOfUser returns the team a registered user is rostered on.
	TeamOfUser(ctx context.Context, userID string) (string, bool, error)
	// Create returns ErrPlayerAlreadyRostered when the user is already on a roster.
	Create(ctx context.Context, item Player) error
	// Delete removes a roster entry and reports whether it existed.
	Delete(ctx context.Context, teamID, playerID string) (bool, error)
}
