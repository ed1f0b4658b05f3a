package rest

import (
	"context"
	"net/http"
	"time"
)

// pingTimeout bounds a single database probe.
const pingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the probe endpoints and the client-facing
// /api/health report.
type HealthHandler struct {
	db      dbPinger
	version string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. version is reported by /health.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, started: time.Now(), now: time.Now}
}

// HealthResponse is the body of /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the state of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIHealthResponse is the body of /api/health.
type APIHealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *HealthHandler) pingDatabase(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := h.now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: h.now().Sub(start).String()}
}

// Live answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 when the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.pingDatabase(r.Context())
	writeJSON(w, probeStatus(db), HealthResponse{Status: db.Status, Timestamp: h.now()})
}

// Health is Ready with the component breakdown, version and uptime.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.pingDatabase(r.Context())
	now := h.now()
	writeJSON(w, probeStatus(db), HealthResponse{
		Status:     db.Status,
		Version:    h.version,
		Uptime:     now.Sub(h.started).Truncate(time.Second).String(),
		Components: map[string]CompStatus{"database": db},
		Timestamp:  now,
	})
}

// API reports the database state for the web client. It always answers 200
// since the process itself is up.
func (h *HealthHandler) API(w http.ResponseWriter, r *http.Request) {
	resp := APIHealthResponse{Status: "ok", Database: "connected"}
	if h.pingDatabase(r.Context()).Status != "ok" {
		resp.Database = "disconnected"
	}
	writeJSON(w, http.StatusOK, resp)
}

func probeStatus(c CompStatus) int {
	if c.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
