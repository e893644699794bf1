package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type tournamentTableModel struct {
	ID                   int64          `db:"id"`
	PublicID             string         `db:"public_id"`
	Name                 string         `db:"name"`
	Description          string         `db:"description"`
	Location             string         `db:"location"`
	StartDate            time.Time      `db:"start_date"`
	EndDate              time.Time      `db:"end_date"`
	RegistrationDeadline sql.NullTime   `db:"registration_deadline"`
	MaxTeams             int            `db:"max_teams"`
	AgeDivisions         pq.StringArray `db:"age_divisions"`
	Format               string         `db:"format"`
	Status               string         `db:"status"`
	CreatedBy            string         `db:"created_by"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
	DeletedAt            *time.Time     `db:"deleted_at"`
}

type tournamentInsertModel struct {
	PublicID             string         `db:"public_id"`
	Name                 string         `db:"name"`
	Description          string         `db:"description"`
	Location             string         `db:"location"`
	StartDate            time.Time      `db:"start_date"`
	EndDate              time.Time      `db:"end_date"`
	RegistrationDeadline *time.Time     `db:"registration_deadline"`
	MaxTeams             int            `db:"max_teams"`
	AgeDivisions         pq.StringArray `db:"age_divisions"`
	Format               string         `db:"format"`
	Status               string         `db:"status"`
	CreatedBy            string         `db:"created_by"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

type registrationTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	TournamentID string     `db:"tournament_public_id"`
	TeamID       string     `db:"team_public_id"`
	Status       string     `db:"status"`
	RegisteredBy string     `db:"registered_by"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type registrationInsertModel struct {
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	RegisteredBy string    `db:"registered_by"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
