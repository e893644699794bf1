package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}

	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{
		PublicID:             item.ID,
		Name:                 item.Name,
		Description:          item.Description,
		Location:             item.Location,
		StartDate:            item.StartDate.UTC(),
		EndDate:              item.EndDate.UTC(),
		RegistrationDeadline: nullableTime(item.RegistrationDeadline),
		MaxTeams:             item.MaxTeams,
		AgeDivisions:         pq.StringArray(item.AgeDivisions),
		Format:               item.Format,
		Status:               item.Status,
		CreatedBy:            item.CreatedBy,
		CreatedAt:            item.CreatedAt.UTC(),
		UpdatedAt:            item.UpdatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	updatedAt := item.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.Update("tournaments").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("location", item.Location).
		Set("start_date", item.StartDate.UTC()).
		Set("end_date", item.EndDate.UTC()).
		Set("registration_deadline", nullableTime(item.RegistrationDeadline)).
		Set("max_teams", item.MaxTeams).
		Set("age_divisions", pq.StringArray(item.AgeDivisions)).
		Set("format", item.Format).
		Set("status", item.Status).
		Set("updated_at", updatedAt).
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament id=%s: %w", item.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update tournament id=%s: no rows affected", item.ID)
	}
	return nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	divisions := make([]string, len(row.AgeDivisions))
	copy(divisions, row.AgeDivisions)

	return tournament.Tournament{
		ID:                   row.PublicID,
		Name:                 row.Name,
		Description:          row.Description,
		Location:             row.Location,
		StartDate:            row.StartDate.UTC(),
		EndDate:              row.EndDate.UTC(),
		RegistrationDeadline: nullTimeToTimePtr(row.RegistrationDeadline),
		MaxTeams:             row.MaxTeams,
		AgeDivisions:         divisions,
		Format:               row.Format,
		Status:               row.Status,
		CreatedBy:            row.CreatedBy,
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}
}
