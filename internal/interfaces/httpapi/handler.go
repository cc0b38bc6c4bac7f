package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

// maxRequestBody bounds admin payloads; a weekly submission carries at most three entries.
const maxRequestBody = 1 << 20

type Handler struct {
	participantService  *usecase.ParticipantService
	leaderboardService  *usecase.LeaderboardService
	weeklyResultService *usecase.WeeklyResultService
	authService         *usecase.AuthService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	participantService *usecase.ParticipantService,
	leaderboardService *usecase.LeaderboardService,
	weeklyResultService *usecase.WeeklyResultService,
	authService *usecase.AuthService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		participantService:  participantService,
		leaderboardService:  leaderboardService,
		weeklyResultService: weeklyResultService,
		authService:         authService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigStd.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
