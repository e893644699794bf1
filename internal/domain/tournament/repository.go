package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) error
	Update(ctx context.Context, item Tournament) error
}

type RegistrationRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Registration, error)
	GetByID(ctx context.Context, registrationID string) (Registration, bool, error)
	Create(ctx context.Context, item Registration) error
	Update(ctx context.Context, item Registration) error
}
