package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fantasy/rules", handler.GetRules)
	mux.HandleFunc("GET /v1/fantasy/matches/{matchID}/performances", handler.ListMatchPerformances)
}

func registerInternalScoringRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/scoring/matches/{matchID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ScoreMatch)))
	mux.Handle("POST /v1/internal/scoring/seasons/{seasonID}/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateSeason)))
	mux.Handle("POST /v1/internal/scoring/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateSeasons)))
}
