package postgres

import (
	"context"
	"fmt"

	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BootstrapSeed loads the demo tournament, teams with their rosters,
// registrations, fields and profiles into an empty database. It is a no-op
// once any tournament exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, statement string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(statement, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, t := range memory.SeedTournaments() {
		if err := exec("tournament "+t.ID, `
INSERT INTO tournaments (public_id, name, description, location, start_date, end_date, registration_deadline,
    max_teams, age_divisions, format, status, created_by, created_at, updated_at)
VALUES (:public_id, :name, :description, :location, :start_date, :end_date, :registration_deadline,
    :max_teams, :age_divisions, :format, :status, :created_by, :created_at, :updated_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":             t.ID,
			"name":                  t.Name,
			"description":           t.Description,
			"location":              t.Location,
			"start_date":            t.StartDate,
			"end_date":              t.EndDate,
			"registration_deadline": nullableTime(t.RegistrationDeadline),
			"max_teams":             t.MaxTeams,
			"age_divisions":         pq.StringArray(t.AgeDivisions),
			"format":                t.Format,
			"status":                t.Status,
			"created_by":            t.CreatedBy,
			"created_at":            t.CreatedAt,
			"updated_at":            t.UpdatedAt,
		}); err != nil {
			return err
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := exec("team "+t.ID, `
INSERT INTO teams (public_id, name, age_division, city, manager_id)
VALUES (:public_id, :name, :age_division, :city, :manager_id)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    t.ID,
			"name":         t.Name,
			"age_division": t.AgeDivision,
			"city":         t.City,
			"manager_id":   t.ManagerID,
		}); err != nil {
			return err
		}
	}

	for _, p := range memory.SeedPlayers() {
		if err := exec("team player "+p.ID, `
INSERT INTO team_players (public_id, team_public_id, user_public_id, player_name, jersey_number, position)
VALUES (:public_id, :team_public_id, :user_public_id, :player_name, :jersey_number, :position)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      p.ID,
			"team_public_id": p.TeamID,
			"user_public_id": optionalString(p.UserID),
			"player_name":    p.Name,
			"jersey_number":  p.JerseyNumber,
			"position":       p.Position,
		}); err != nil {
			return err
		}
	}

	for _, r := range memory.SeedRegistrations() {
		if err := exec("registration "+r.ID, `
INSERT INTO tournament_registrations (public_id, tournament_public_id, team_public_id, status, registered_by)
VALUES (:public_id, :tournament_public_id, :team_public_id, :status, :registered_by)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":            r.ID,
			"tournament_public_id": r.TournamentID,
			"team_public_id":       r.TeamID,
			"status":               r.Status,
			"registered_by":        r.RegisteredBy,
		}); err != nil {
			return err
		}
	}

	for _, f := range memory.SeedFields() {
		if err := exec("field "+f.ID, `
INSERT INTO fields (public_id, tournament_public_id, name, location)
VALUES (:public_id, :tournament_public_id, :name, :location)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":            f.ID,
			"tournament_public_id": f.TournamentID,
			"name":                 f.Name,
			"location":             f.Location,
		}); err != nil {
			return err
		}
	}

	for _, p := range memory.SeedProfiles() {
		if err := exec("profile "+p.ID, `
INSERT INTO profiles (public_id, email, full_name, role, is_approved, approval_status, created_at)
VALUES (:public_id, :email, :full_name, :role, :is_approved, :approval_status, :created_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       p.ID,
			"email":           p.Email,
			"full_name":       p.FullName,
			"role":            p.Role,
			"is_approved":     p.IsApproved,
			"approval_status": p.Status(),
			"created_at":      p.CreatedAt,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
