package http_handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const readyzPingTimeout = 2 * time.Second

// HealthHandler exposes liveness and readiness probes. Liveness never touches
// dependencies; readiness fails when the database is unreachable.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeProbe(w, http.StatusOK, "ok", "")
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			writeProbe(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
	}
	writeProbe(w, http.StatusOK, "ready", "")
}

func writeProbe(w http.ResponseWriter, code int, status, detail string) {
	body := struct {
		Status string `json:"status"`
		Detail string `json:"detail,omitempty"`
	}{Status: status, Detail: detail}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
