package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger reports whether the remote API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks. Client is nil when
// the audit database is not configured.
type Handler struct {
	Client *mongo.Client
	API    Pinger
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, api Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		API:    api,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	API      string `json:"api"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "api":"reachable" }
//
// database is "disabled" when no MongoDB is configured. If the database or
// the API is down: 503 with status "error".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "disabled",
		API:      "reachable",
	}

	if h.Client != nil {
		resp.Database = "connected"
		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
		}
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: api ping failed", zap.Error(err))
		resp.API = "unreachable"
		if resp.Status == "ok" {
			resp.Status = "error"
			resp.Message = "API unavailable"
			resp.Error = err.Error()
		}
	}

	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
