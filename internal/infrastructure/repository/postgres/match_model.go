package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	TournamentID  string         `db:"tournament_public_id"`
	RoundNumber   int            `db:"round_number"`
	RoundName     string         `db:"round_name"`
	MatchNumber   int            `db:"match_number"`
	Team1ID       sql.NullString `db:"team1_public_id"`
	Team2ID       sql.NullString `db:"team2_public_id"`
	BracketType   string         `db:"bracket_type"`
	FieldNumber   int            `db:"field_number"`
	FieldID       sql.NullString `db:"field_public_id"`
	ScheduledTime sql.NullTime   `db:"scheduled_time"`
	Status        string         `db:"status"`
	Team1Score    int            `db:"team1_score"`
	Team2Score    int            `db:"team2_score"`
	WinnerID      sql.NullString `db:"winner_public_id"`
	IsFinal       bool           `db:"is_final"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID      string     `db:"public_id"`
	TournamentID  string     `db:"tournament_public_id"`
	RoundNumber   int        `db:"round_number"`
	RoundName     string     `db:"round_name"`
	MatchNumber   int        `db:"match_number"`
	Team1ID       *string    `db:"team1_public_id"`
	Team2ID       *string    `db:"team2_public_id"`
	BracketType   string     `db:"bracket_type"`
	FieldNumber   int        `db:"field_number"`
	FieldID       *string    `db:"field_public_id"`
	ScheduledTime *time.Time `db:"scheduled_time"`
	Status        string     `db:"status"`
	Team1Score    int        `db:"team1_score"`
	Team2Score    int        `db:"team2_score"`
	WinnerID      *string    `db:"winner_public_id"`
	IsFinal       bool       `db:"is_final"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
