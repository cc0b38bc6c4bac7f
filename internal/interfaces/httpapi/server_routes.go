package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if !opts.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/participants", handler.ListParticipants)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/highlights", handler.GetLeaderboardHighlights)
	mux.HandleFunc("GET /v1/weekly-results", handler.ListWeeklyResults)
	mux.HandleFunc("GET /v1/weekly-results/{resultID}", handler.GetWeeklyResult)
	mux.HandleFunc("POST /v1/admin/sessions", handler.CreateAdminSession)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("DELETE /v1/admin/sessions", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAdminSession)))
	mux.Handle("POST /v1/participants", RequireAuth(verifier, http.HandlerFunc(handler.CreateParticipant)))
	mux.Handle("DELETE /v1/participants/{participantID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteParticipant)))
	mux.Handle("POST /v1/weekly-results", RequireAuth(verifier, http.HandlerFunc(handler.SubmitWeeklyResult)))
}
