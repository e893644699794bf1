package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return sqlx.NewDb(db, "postgres"), mock
}

func TestMatchRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)
	at := time.Date(2026, time.November, 14, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"public_id", "tournament_public_id", "round_number", "round_name", "match_number",
		"team1_public_id", "team2_public_id", "bracket_type", "field_number", "field_public_id",
		"scheduled_time", "status", "team1_score", "team2_score", "winner_public_id", "is_final",
	}).AddRow(
		"m-1", "t-1", 2, "Semifinals", 1,
		"team-a", nil, "elimination", 1, "field-1",
		at, "scheduled", 0, 0, nil, false,
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM matches WHERE public_id = $1 AND deleted_at IS NULL LIMIT 1")).
		WithArgs("m-1").
		WillReturnRows(rows)

	got, exists, err := repo.GetByID(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if !exists {
		t.Fatalf("expected match to exist")
	}
	if got.Team1ID != "team-a" || got.Team2ID != "" || got.WinnerID != "" {
		t.Fatalf("unexpected teams: %+v", got)
	}
	if got.ScheduledTime == nil || !got.ScheduledTime.Equal(at) {
		t.Fatalf("unexpected scheduled time: %v", got.ScheduledTime)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMatchRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM matches WHERE public_id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, exists, err := repo.GetByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if exists {
		t.Fatalf("expected match not to exist")
	}
}

func TestMatchRepository_ReplaceByTournament(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	matches := []match.Match{
		{ID: "m-1", RoundNumber: 1, MatchNumber: 1, Team1ID: "a", Team2ID: "b", BracketType: match.BracketRoundRobin, Status: match.StatusScheduled},
		{ID: "m-2", RoundNumber: 1, MatchNumber: 2, Team1ID: "c", BracketType: match.BracketElimination, Status: match.StatusCompleted, WinnerID: "c"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET deleted_at = NOW() WHERE tournament_public_id = $1 AND deleted_at IS NULL")).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO matches (public_id, tournament_public_id,")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO matches (public_id, tournament_public_id,")).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceByTournament(context.Background(), "t-1", matches); err != nil {
		t.Fatalf("replace matches: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMatchRepository_ReplaceByTournamentRollsBackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET deleted_at = NOW()")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO matches")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceByTournament(context.Background(), "t-1", []match.Match{{ID: "m-1", RoundNumber: 1, MatchNumber: 1}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSpiritRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSpiritRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO spirit_scores")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), spirit.Score{ID: "s-1", MatchID: "m-1", ScoringTeamID: "a", Scores: spirit.DefaultScores()})
	if !errors.Is(err, spirit.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}
}

func TestTournamentRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTournamentRepository(db)
	start := time.Date(2026, time.November, 14, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"public_id", "name", "location", "start_date", "end_date", "registration_deadline",
		"max_teams", "age_divisions", "format", "status",
	}).AddRow(
		"t-1", "Monsoon Hat", "Bengaluru", start, start.Add(24*time.Hour), nil,
		8, "{Open,Mixed}", "round_robin", "registration_open",
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM tournaments WHERE deleted_at IS NULL ORDER BY start_date, id")).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected tournament count: %d", len(got))
	}
	if got[0].RegistrationDeadline != nil {
		t.Fatalf("expected nil deadline")
	}
	if len(got[0].AgeDivisions) != 2 || got[0].AgeDivisions[1] != "Mixed" {
		t.Fatalf("unexpected divisions: %v", got[0].AgeDivisions)
	}
}

func TestProfileRepository_ListPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	joined := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"public_id", "email", "full_name", "role", "is_approved", "approval_status",
		"rejection_reason", "reviewed_by", "reviewed_at", "created_at",
	}).AddRow(
		"user-volunteer", "volunteer@tournify.local", "Meera Volunteer", "volunteer", false, "pending",
		"", "", nil, joined,
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM profiles WHERE approval_status = $1 AND is_approved = $2 ORDER BY created_at, id")).
		WithArgs(user.ApprovalPending, false).
		WillReturnRows(rows)

	got, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending profiles: %v", err)
	}
	if len(got) != 1 || got[0].ID != "user-volunteer" || got[0].Status() != user.ApprovalPending {
		t.Fatalf("unexpected pending profiles: %+v", got)
	}
	if got[0].ReviewedAt != nil || !got[0].CreatedAt.Equal(joined) {
		t.Fatalf("unexpected review fields: %+v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileRepository_UpsertWritesReview(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	reviewedAt := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles (public_id, email, full_name, role, is_approved, approval_status, rejection_reason, reviewed_by, reviewed_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (public_id)")).
		WithArgs("user-volunteer", "volunteer@tournify.local", "Meera Volunteer", "volunteer", false, user.ApprovalRejected, "duplicate account", "user-director", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), user.Profile{
		ID:              "user-volunteer",
		Email:           "volunteer@tournify.local",
		FullName:        "Meera Volunteer",
		Role:            "volunteer",
		ApprovalStatus:  user.ApprovalRejected,
		RejectionReason: "duplicate account",
		ReviewedBy:      "user-director",
		ReviewedAt:      &reviewedAt,
	})
	if err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlayerRepository_ListByTeam(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	rows := sqlmock.NewRows([]string{"public_id", "team_public_id", "user_public_id", "player_name", "jersey_number", "position", "created_at"}).
		AddRow("p-1", "team-disc-jockeys", "user-player", "Kiran Player", 7, "handler", time.Now()).
		AddRow("p-2", "team-disc-jockeys", nil, "Walk-on", nil, "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM team_players WHERE team_public_id = $1 AND deleted_at IS NULL ORDER BY jersey_number NULLS LAST, LOWER(player_name)")).
		WithArgs("team-disc-jockeys").
		WillReturnRows(rows)

	got, err := repo.ListByTeam(context.Background(), "team-disc-jockeys")
	if err != nil {
		t.Fatalf("list team players: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected roster size: %d", len(got))
	}
	if got[0].JerseyNumber == nil || *got[0].JerseyNumber != 7 || got[0].UserID != "user-player" {
		t.Fatalf("unexpected first player: %+v", got[0])
	}
	if got[1].JerseyNumber != nil || got[1].UserID != "" {
		t.Fatalf("expected numberless walk-on, got %+v", got[1])
	}
}

func TestPlayerRepository_CreateDuplicateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO team_players (public_id, team_public_id, user_public_id, player_name, position, created_at)")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), team.Player{ID: "p-3", TeamID: "team-air-bender", UserID: "user-player", Name: "Kiran Player"})
	if !errors.Is(err, team.ErrPlayerAlreadyRostered) {
		t.Fatalf("expected ErrPlayerAlreadyRostered, got %v", err)
	}
}

func TestPlayerRepository_DeleteReportsMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE team_players SET deleted_at = NOW() WHERE public_id = $1 AND team_public_id = $2 AND deleted_at IS NULL")).
		WithArgs("p-ghost", "team-disc-jockeys").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), "team-disc-jockeys", "p-ghost")
	if err != nil {
		t.Fatalf("delete team player: %v", err)
	}
	if removed {
		t.Fatalf("expected missing player not to be removed")
	}
}
