package postgres

import (
	"context"
	"fmt"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) ListByTournament(ctx context.Context, tournamentID string) ([]field.Field, error) {
	query, args, err := qb.Select("*").From("fields").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fields query: %w", err)
	}

	var rows []fieldTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fields by tournament: %w", err)
	}

	out := make([]field.Field, 0, len(rows))
	for _, row := range rows {
		out = append(out, field.Field{
			ID:           row.PublicID,
			TournamentID: row.TournamentID,
			Name:         row.Name,
			Location:     row.Location,
		})
	}
	return out, nil
}

func (r *FieldRepository) Create(ctx context.Context, item field.Field) error {
	query, args, err := qb.InsertModel("fields", fieldInsertModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		Name:         item.Name,
		Location:     item.Location,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert field query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert field id=%s: %w", item.ID, err)
	}
	return nil
}
