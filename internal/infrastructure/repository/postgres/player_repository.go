package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TeamID       string         `db:"team_public_id"`
	UserID       sql.NullString `db:"user_public_id"`
	Name         string         `db:"player_name"`
	JerseyNumber sql.NullInt64  `db:"jersey_number"`
	Position     string         `db:"position"`
	CreatedAt    time.Time      `db:"created_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID     string    `db:"public_id"`
	TeamID       string    `db:"team_public_id"`
	UserID       *string   `db:"user_public_id,omitnil"`
	Name         string    `db:"player_name"`
	JerseyNumber *int      `db:"jersey_number,omitnil"`
	Position     string    `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]team.Player, error) {
	query, args, err := qb.Select("*").From("team_players").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("jersey_number NULLS LAST", "LOWER(player_name)").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team players team=%s: %w", teamID, err)
	}

	out := make([]team.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) TeamOfUser(ctx context.Context, userID string) (string, bool, error) {
	query, args, err := qb.Select("team_public_id").From("team_players").
		Where(
			qb.Eq("user_public_id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build team of user query: %w", err)
	}

	var teamID string
	if err := r.db.GetContext(ctx, &teamID, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get team of user=%s: %w", userID, err)
	}
	return teamID, true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item team.Player) error {
	query, args, err := qb.InsertModel("team_players", playerInsertModel{
		PublicID:     item.ID,
		TeamID:       item.TeamID,
		UserID:       optionalString(item.UserID),
		Name:         item.Name,
		JerseyNumber: item.JerseyNumber,
		Position:     item.Position,
		CreatedAt:    item.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert team player id=%s: %w", item.ID, team.ErrPlayerAlreadyRostered)
		}
		return fmt.Errorf("insert team player id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, teamID, playerID string) (bool, error) {
	query, args, err := qb.Update("team_players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", playerID),
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete team player id=%s: %w", playerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete team player rows affected: %w", err)
	}
	return affected > 0, nil
}

func playerFromRow(row playerTableModel) team.Player {
	var jersey *int
	if row.JerseyNumber.Valid {
		n := int(row.JerseyNumber.Int64)
		jersey = &n
	}
	return team.Player{
		ID:           row.PublicID,
		TeamID:       row.TeamID,
		UserID:       nullStringValue(row.UserID),
		Name:         row.Name,
		JerseyNumber: jersey,
		Position:     row.Position,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
