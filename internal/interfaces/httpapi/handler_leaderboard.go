package httpapi

import (
	"net/http"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	query := r.URL.Query().Get("q")
	rows, err := h.leaderboardService.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeaderboardHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardHighlights")
	defer span.End()

	highlights, err := h.leaderboardService.Highlights(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard highlights failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, highlightsToDTO(highlights))
}
