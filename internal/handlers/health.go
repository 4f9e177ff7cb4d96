package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const healthPingTimeout = 5 * time.Second

// Pinger is the subset of *sql.DB the health probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports process and database health. Store failures are
// reported in the payload, never by crashing or by a non-200 status.
type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status   string    `json:"status"`
	DBStatus string    `json:"dbStatus"`
	Time     time.Time `json:"time"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	dbStatus := "Healthy"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "Unhealthy: " + err.Error()
		h.log.Error("health check database ping failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "Healthy",
		DBStatus: dbStatus,
		Time:     time.Now().UTC(),
	})
}
