package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	profile, _ := profileFromContext(ctx)

	writeSuccess(ctx, w, http.StatusOK, meToDTO(principal, profile))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	tournamentID := r.URL.Query().Get("tournament_id")
	dashboard, err := h.dashboardService.Get(ctx, principal, tournamentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed",
			"user_id", principal.UserID,
			"tournament_id", tournamentID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
