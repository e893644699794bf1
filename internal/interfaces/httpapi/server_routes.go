package httpapi

import (
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
)

var (
	directorOnly    = []string{role.TournamentDirector}
	managerOnly     = []string{role.TeamManager}
	matchOperators  = []string{role.TournamentDirector, role.Volunteer, role.ScoringTeam}
	spiritScorers   = []string{role.TeamManager, role.Player}
	spiritReviewers = []string{role.TournamentDirector, role.ScoringTeam}
	rosterEditors   = []string{role.TournamentDirector, role.TeamManager}
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings/teams/{teamID}", handler.GetTeamStanding)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/spirit/leaderboard", handler.SpiritLeaderboard)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/spirit/summary", handler.SpiritSummary)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/media", handler.ListMedia)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/qr", handler.TournamentQR)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/live", handler.LiveTournament)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	registerAuthorizedSessionRoutes(mux, handler, resolver)
	registerAuthorizedTournamentRoutes(mux, handler, resolver)
	registerAuthorizedMatchRoutes(mux, handler, resolver)
	registerAuthorizedAdminRoutes(mux, handler, resolver)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/spirit-reminders", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSpiritRemindersJob)))
	mux.Handle("POST /v1/internal/jobs/spirit-reminder", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSpiritReminderJob)))
}

func registerAuthorizedSessionRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("GET /v1/me", RequireAuth(resolver, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /v1/dashboard", RequireAuth(resolver, http.HandlerFunc(handler.GetDashboard)))
}

func registerAuthorizedTournamentRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("POST /v1/tournaments", withRole(resolver, directorOnly, handler.CreateTournament))
	mux.Handle("PATCH /v1/tournaments/{tournamentID}/status", withRole(resolver, directorOnly, handler.UpdateTournamentStatus))
	mux.Handle("POST /v1/tournaments/{tournamentID}/fields", withRole(resolver, directorOnly, handler.CreateField))
	mux.Handle("GET /v1/tournaments/{tournamentID}/fields", RequireAuth(resolver, http.HandlerFunc(handler.ListFields)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/schedule/preview", withRole(resolver, directorOnly, handler.PreviewSchedule))
	mux.Handle("POST /v1/tournaments/{tournamentID}/schedule", withRole(resolver, directorOnly, handler.GenerateSchedule))
	mux.Handle("GET /v1/tournaments/{tournamentID}/registrations", withRole(resolver, directorOnly, handler.ListRegistrations))
	mux.Handle("POST /v1/tournaments/{tournamentID}/registrations", withRole(resolver, managerOnly, handler.RegisterTeam))
	mux.Handle("PATCH /v1/registrations/{registrationID}", withRole(resolver, directorOnly, handler.ReviewRegistration))
	mux.Handle("GET /v1/tournaments/{tournamentID}/spirit/pending", withRole(resolver, spiritReviewers, handler.PendingSpirit))
	mux.Handle("POST /v1/tournaments/{tournamentID}/media", withRole(resolver, directorOnly, handler.CreateMediaUpload))
	mux.Handle("POST /v1/teams", withRole(resolver, managerOnly, handler.CreateTeam))
	mux.Handle("POST /v1/teams/{teamID}/players", withRole(resolver, rosterEditors, handler.AddTeamPlayer))
	mux.Handle("DELETE /v1/teams/{teamID}/players/{playerID}", withRole(resolver, rosterEditors, handler.RemoveTeamPlayer))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("POST /v1/matches/{matchID}/start", withRole(resolver, matchOperators, handler.StartMatch))
	mux.Handle("POST /v1/matches/{matchID}/score", withRole(resolver, matchOperators, handler.UpdateMatchScore))
	mux.Handle("POST /v1/matches/{matchID}/end", withRole(resolver, matchOperators, handler.EndMatch))
	mux.Handle("POST /v1/matches/{matchID}/cancel", withRole(resolver, matchOperators, handler.CancelMatch))
	mux.Handle("POST /v1/matches/{matchID}/spirit", withRole(resolver, spiritScorers, handler.SubmitSpirit))
}

func registerAuthorizedAdminRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("GET /v1/admin/approvals", withRole(resolver, directorOnly, handler.ListPendingApprovals))
	mux.Handle("PATCH /v1/admin/approvals/{userID}", withRole(resolver, directorOnly, handler.ReviewApproval))
}

func withRole(resolver SessionResolver, allowed []string, next http.HandlerFunc) http.Handler {
	return RequireAuth(resolver, RequireRole(allowed, next))
}
