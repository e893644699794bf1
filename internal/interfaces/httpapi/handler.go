package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 1 << 20

// LiveStream upgrades a request into a realtime subscription for one tournament.
type LiveStream interface {
	ServeRoom(w http.ResponseWriter, r *http.Request, tournamentID string) error
}

type Handler struct {
	tournamentService *usecase.TournamentService
	teamService       *usecase.TeamService
	fieldService      *usecase.FieldService
	scheduleService   *usecase.ScheduleService
	matchService      *usecase.MatchService
	standingService   *usecase.StandingService
	spiritService     *usecase.SpiritService
	dashboardService  *usecase.DashboardService
	reminderService   *usecase.ReminderService
	mediaService      *usecase.MediaService
	approvalService   *usecase.ApprovalService
	live              LiveStream
	publicBaseURL     string
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	teamService *usecase.TeamService,
	fieldService *usecase.FieldService,
	scheduleService *usecase.ScheduleService,
	matchService *usecase.MatchService,
	standingService *usecase.StandingService,
	spiritService *usecase.SpiritService,
	dashboardService *usecase.DashboardService,
	reminderService *usecase.ReminderService,
	mediaService *usecase.MediaService,
	approvalService *usecase.ApprovalService,
	live LiveStream,
	publicBaseURL string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		teamService:       teamService,
		fieldService:      fieldService,
		scheduleService:   scheduleService,
		matchService:      matchService,
		standingService:   standingService,
		spiritService:     spiritService,
		dashboardService:  dashboardService,
		reminderService:   reminderService,
		mediaService:      mediaService,
		approvalService:   approvalService,
		live:              live,
		publicBaseURL:     strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:            logger,
		validator:         newValidator(),
	}
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON rejects unknown fields. An empty body is an error unless allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
