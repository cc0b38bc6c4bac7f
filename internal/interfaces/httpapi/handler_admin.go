package httpapi

import (
	"net/http"
)

type createSessionRequest struct {
	Password string `json:"password" validate:"max=256"`
}

func (h *Handler) CreateAdminSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAdminSession")
	defer span.End()

	var req createSessionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Login(ctx, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, adminSessionDTO{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *Handler) DeleteAdminSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAdminSession")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if ok {
		if err := h.authService.Logout(ctx, principal); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
