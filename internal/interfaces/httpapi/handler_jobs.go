package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func (h *Handler) RunSpiritRemindersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSpiritRemindersJob")
	defer span.End()

	if h.reminderService == nil {
		writeError(ctx, w, fmt.Errorf("%w: reminder service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req spiritRemindersJobRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reminderService.DispatchSpiritReminders(ctx, req.TournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "run spirit reminders job failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSpiritReminderJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSpiritReminderJob")
	defer span.End()

	if h.reminderService == nil {
		writeError(ctx, w, fmt.Errorf("%w: reminder service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req spiritReminderJobRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sent, err := h.reminderService.HandleSpiritReminder(ctx, usecase.SpiritReminderInput{
		TournamentID: req.TournamentID,
		MatchID:      req.MatchID,
		TeamID:       req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run spirit reminder job failed",
			"tournament_id", req.TournamentID,
			"match_id", req.MatchID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spiritReminderResultDTO{Sent: sent})
}
