package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

func (h *Handler) CreateMediaUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMediaUpload")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createMediaUploadRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := pathParam(r, "tournamentID")
	upload, err := h.mediaService.CreateUpload(ctx, usecase.CreateUploadInput{
		TournamentID: tournamentID,
		ContentType:  req.ContentType,
		UploadedBy:   principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create media upload failed",
			"tournament_id", tournamentID,
			"content_type", req.ContentType,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mediaUploadToDTO(upload))
}

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMedia")
	defer span.End()

	tournamentID := pathParam(r, "tournamentID")
	items, err := h.mediaService.List(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list media failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, mediaAssetToDTO))
}

// TournamentQR renders a PNG QR code linking to the public tournament page.
func (h *Handler) TournamentQR(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TournamentQR")
	defer span.End()

	size, err := parseQRSize(r.URL.Query().Get("size"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := pathParam(r, "tournamentID")
	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	png, err := qrcode.Encode(h.publicBaseURL+"/tournaments/"+item.ID, qrcode.Medium, size)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode tournament qr failed", "tournament_id", item.ID, "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func parseQRSize(raw string) (int, error) {
	if raw == "" {
		return defaultQRSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < minQRSize || size > maxQRSize {
		return 0, fmt.Errorf("%w: size must be an integer between %d and %d", usecase.ErrInvalidInput, minQRSize, maxQRSize)
	}
	return size, nil
}

// LiveTournament upgrades to a websocket subscribed to the tournament room.
func (h *Handler) LiveTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveTournament")
	defer span.End()

	if h.live == nil {
		writeError(ctx, w, fmt.Errorf("%w: live updates are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	tournamentID := pathParam(r, "tournamentID")
	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// The upgrader writes its own error response.
	if err := h.live.ServeRoom(w, r, item.ID); err != nil {
		h.logger.WarnContext(ctx, "open live stream failed", "tournament_id", item.ID, "error", err)
	}
}
