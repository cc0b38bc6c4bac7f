package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

type createParticipantRequest struct {
	Name string `json:"name" validate:"max=100"`
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipants")
	defer span.End()

	items, err := h.participantService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list participants failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]participantDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participantToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateParticipant")
	defer span.End()

	var req createParticipantRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.participantService.Add(ctx, usecase.AddParticipantInput{Name: req.Name})
	if err != nil {
		h.logger.WarnContext(ctx, "create participant failed", "name", strings.TrimSpace(req.Name), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participantMutationDTO{
		Message:     out.Message,
		Participant: participantToDTO(out.Participant),
	})
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteParticipant")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	out, err := h.participantService.Delete(ctx, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete participant failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantMutationDTO{
		Message:     out.Message,
		Participant: participantToDTO(out.Participant),
	})
}
