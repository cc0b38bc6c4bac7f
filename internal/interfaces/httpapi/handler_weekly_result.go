package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

type winnerRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=20000"`
}

type submitWeeklyResultRequest struct {
	Year               int           `json:"year" validate:"required,gt=0"`
	Semester           string        `json:"semester" validate:"required"`
	WeekNumber         int           `json:"week_number" validate:"required,gte=1"`
	WeeklyParticipants []string      `json:"weekly_participants" validate:"dive,max=100"`
	First              winnerRequest `json:"first"`
	Second             winnerRequest `json:"second"`
	Third              winnerRequest `json:"third"`
}

func (h *Handler) ListWeeklyResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeklyResults")
	defer span.End()

	items, err := h.weeklyResultService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list weekly results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]weeklyResultDTO, 0, len(items))
	for _, item := range items {
		out = append(out, weeklyResultToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetWeeklyResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyResult")
	defer span.End()

	resultID := strings.TrimSpace(r.PathValue("resultID"))
	item, err := h.weeklyResultService.Get(ctx, resultID)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly result failed", "result_id", resultID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyResultToDTO(item))
}

func (h *Handler) SubmitWeeklyResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitWeeklyResult")
	defer span.End()

	var req submitWeeklyResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.weeklyResultService.Submit(ctx, usecase.SubmitWeeklyResultInput{
		Year:               req.Year,
		Semester:           req.Semester,
		WeekNumber:         req.WeekNumber,
		WeeklyParticipants: req.WeeklyParticipants,
		First:              usecase.WinnerInput(req.First),
		Second:             usecase.WinnerInput(req.Second),
		Third:              usecase.WinnerInput(req.Third),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit weekly result failed",
			"year", req.Year,
			"semester", req.Semester,
			"week_number", req.WeekNumber,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyResultMutationDTO{
		Message: out.Message,
		Result:  weeklyResultToDTO(out.Result),
	})
}
