package httpapi

import (
	"context"
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewSchedule")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	bracketType := r.URL.Query().Get("bracket_type")
	preview, err := h.scheduleService.Preview(ctx, tournamentID, bracketType)
	if err != nil {
		h.logger.WarnContext(ctx, "preview schedule failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, preview)
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	var req generateScheduleRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := pathParam(r, "tournamentID")
	matches, err := h.scheduleService.Generate(ctx, usecase.GenerateScheduleInput{
		TournamentID:   tournamentID,
		BracketType:    req.BracketType,
		StartTime:      req.StartTime,
		MatchMinutes:   req.MatchDuration,
		BreakMinutes:   req.BreakDuration,
		ParallelFields: req.ParallelFields,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed",
			"tournament_id", tournamentID,
			"bracket_type", req.BracketType,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mapSlice(matches, matchToDTO))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	items, err := h.matchService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, matchToDTO))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := pathParam(r, "matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	h.transitionMatch(ctx, w, r, "start", h.matchService.Start)
}

func (h *Handler) EndMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndMatch")
	defer span.End()

	h.transitionMatch(ctx, w, r, "end", h.matchService.End)
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	h.transitionMatch(ctx, w, r, "cancel", h.matchService.Cancel)
}

func (h *Handler) transitionMatch(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	action string,
	apply func(ctx context.Context, matchID string) (match.Match, error),
) {
	matchID := pathParam(r, "matchID")
	item, err := apply(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, action+" match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore")
	defer span.End()

	var req updateScoreRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathParam(r, "matchID")
	item, err := h.matchService.UpdateScore(ctx, usecase.UpdateScoreInput{
		MatchID:    matchID,
		Team1Score: *req.Team1Score,
		Team2Score: *req.Team2Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	entries, err := h.standingService.Leaderboard(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(entries, standingEntryToDTO))
}

func (h *Handler) GetTeamStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStanding")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	teamID := pathParam(r, "teamID")
	stats, err := h.standingService.TeamStats(ctx, tournamentID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team standing failed",
			"tournament_id", tournamentID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(stats))
}
