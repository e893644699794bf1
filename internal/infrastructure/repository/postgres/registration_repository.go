package postgres

import (
	"context"
	"fmt"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) ListByTournament(ctx context.Context, tournamentID string) ([]tournament.Registration, error) {
	query, args, err := qb.Select("*").From("tournament_registrations").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list registrations by tournament: %w", err)
	}

	out := make([]tournament.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationFromRow(row))
	}
	return out, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID string) (tournament.Registration, bool, error) {
	query, args, err := qb.Select("*").From("tournament_registrations").
		Where(
			qb.Eq("public_id", registrationID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Registration{}, false, fmt.Errorf("build get registration query: %w", err)
	}

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Registration{}, false, nil
		}
		return tournament.Registration{}, false, fmt.Errorf("get registration: %w", err)
	}

	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, item tournament.Registration) error {
	query, args, err := qb.InsertModel("tournament_registrations", registrationInsertModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		TeamID:       item.TeamID,
		Status:       item.Status,
		RegisteredBy: item.RegisteredBy,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert registration query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert registration team=%s tournament=%s: already registered: %w", item.TeamID, item.TournamentID, err)
		}
		return fmt.Errorf("insert registration id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *RegistrationRepository) Update(ctx context.Context, item tournament.Registration) error {
	query, args, err := qb.Update("tournament_registrations").
		Set("status", item.Status).
		Set("updated_at", item.UpdatedAt.UTC()).
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update registration query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update registration id=%s: %w", item.ID, err)
	}
	return nil
}

func registrationFromRow(row registrationTableModel) tournament.Registration {
	return tournament.Registration{
		ID:           row.PublicID,
		TournamentID: row.TournamentID,
		TeamID:       row.TeamID,
		Status:       row.Status,
		RegisteredBy: row.RegisteredBy,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}
