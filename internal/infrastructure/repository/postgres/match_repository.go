package postgres

import (
	"context"
	"fmt"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("round_number", "match_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by tournament: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

// ReplaceByTournament soft-deletes the current schedule and inserts matches in one transaction.
func (r *MatchRepository) ReplaceByTournament(ctx context.Context, tournamentID string, matches []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}

	for _, item := range matches {
		if item.ID == "" {
			return fmt.Errorf("match id is required")
		}
		item.TournamentID = tournamentID
		query, args, err := qb.InsertModel("matches", matchInsertModelFrom(item), "")
		if err != nil {
			return fmt.Errorf("build insert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match round=%d number=%d: %w", item.RoundNumber, item.MatchNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace matches tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("team1_public_id", optionalString(item.Team1ID)).
		Set("team2_public_id", optionalString(item.Team2ID)).
		Set("field_number", item.FieldNumber).
		Set("field_public_id", optionalString(item.FieldID)).
		Set("scheduled_time", nullableTime(item.ScheduledTime)).
		Set("status", item.Status).
		Set("team1_score", item.Team1Score).
		Set("team2_score", item.Team2Score).
		Set("winner_public_id", optionalString(item.WinnerID)).
		Set("updated_at", item.UpdatedAt.UTC()).
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match id=%s: %w", item.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match id=%s: no rows affected", item.ID)
	}
	return nil
}

func matchInsertModelFrom(item match.Match) matchInsertModel {
	return matchInsertModel{
		PublicID:      item.ID,
		TournamentID:  item.TournamentID,
		RoundNumber:   item.RoundNumber,
		RoundName:     item.RoundName,
		MatchNumber:   item.MatchNumber,
		Team1ID:       optionalString(item.Team1ID),
		Team2ID:       optionalString(item.Team2ID),
		BracketType:   item.BracketType,
		FieldNumber:   item.FieldNumber,
		FieldID:       optionalString(item.FieldID),
		ScheduledTime: nullableTime(item.ScheduledTime),
		Status:        item.Status,
		Team1Score:    item.Team1Score,
		Team2Score:    item.Team2Score,
		WinnerID:      optionalString(item.WinnerID),
		IsFinal:       item.IsFinal,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.PublicID,
		TournamentID:  row.TournamentID,
		RoundNumber:   row.RoundNumber,
		RoundName:     row.RoundName,
		MatchNumber:   row.MatchNumber,
		Team1ID:       nullStringValue(row.Team1ID),
		Team2ID:       nullStringValue(row.Team2ID),
		BracketType:   row.BracketType,
		FieldNumber:   row.FieldNumber,
		FieldID:       nullStringValue(row.FieldID),
		ScheduledTime: nullTimeToTimePtr(row.ScheduledTime),
		Status:        row.Status,
		Team1Score:    row.Team1Score,
		Team2Score:    row.Team2Score,
		WinnerID:      nullStringValue(row.WinnerID),
		IsFinal:       row.IsFinal,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}
