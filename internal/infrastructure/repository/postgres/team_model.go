package postgres

import "time"

type teamTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	AgeDivision string     `db:"age_division"`
	City        string     `db:"city"`
	ManagerID   string     `db:"manager_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	AgeDivision string    `db:"age_division"`
	City        string    `db:"city"`
	ManagerID   string    `db:"manager_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type fieldTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	TournamentID string     `db:"tournament_public_id"`
	Name         string     `db:"name"`
	Location     string     `db:"location"`
	CreatedAt    time.Time  `db:"created_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type fieldInsertModel struct {
	PublicID     string `db:"public_id"`
	TournamentID string `db:"tournament_public_id"`
	Name         string `db:"name"`
	Location     string `db:"location"`
}
