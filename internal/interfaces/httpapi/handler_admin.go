package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

func (h *Handler) ListPendingApprovals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingApprovals")
	defer span.End()

	items, err := h.approvalService.ListPendingProfiles(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pending approvals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, profileApprovalToDTO))
}

func (h *Handler) ReviewApproval(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviewApproval")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req reviewProfileRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := pathParam(r, "userID")
	item, err := h.approvalService.ReviewProfile(ctx, usecase.ReviewProfileInput{
		UserID:     userID,
		ReviewerID: principal.UserID,
		Decision:   req.Decision,
		Reason:     req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "review approval failed", "user_id", userID, "decision", req.Decision, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileApprovalToDTO(item))
}
