package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func (h *Handler) SubmitSpirit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSpirit")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitSpiritRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathParam(r, "matchID")
	score, err := h.spiritService.Submit(ctx, usecase.SubmitSpiritInput{
		MatchID:       matchID,
		ScoringTeamID: req.ScoringTeamID,
		Scores:        req.scores(),
		Comments:      req.Comments,
		SubmittedBy:   principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit spirit score failed",
			"match_id", matchID,
			"scoring_team_id", req.ScoringTeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, spiritScoreToDTO(score))
}

func (h *Handler) SpiritLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SpiritLeaderboard")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	entries, err := h.spiritService.Leaderboard(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get spirit leaderboard failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(entries, spiritEntryToDTO))
}

func (h *Handler) SpiritSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SpiritSummary")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	summary, err := h.spiritService.Summary(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get spirit summary failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spiritSummaryToDTO(summary))
}

func (h *Handler) PendingSpirit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PendingSpirit")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	items, err := h.spiritService.Pending(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list pending spirit failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if items == nil {
		items = []usecase.PendingSpirit{}
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
