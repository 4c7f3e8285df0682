package health

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/filmrec/viewer/lib/api"
)

// Health represents the health check response structure. It includes
// the overall status, timestamp, and backend API health information.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	API       struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"api"`
}

// Check returns an HTTP handler that reports whether the viewer and
// its recommendation backend are healthy. The viewer holds no open
// database connection between requests, so the backend API is the
// only dependency worth probing.
func Check(client *api.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := Health{
			Status:    "ok",
			Timestamp: time.Now(),
		}

		if err := client.Healthz(r.Context()); err != nil {
			health.Status = "degraded"
			health.API.Status = "error"
			health.API.Message = err.Error()
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		health.API.Status = "ok"
		writeHealth(w, health, http.StatusOK)
	}
}

// writeHealth writes the health check response to the HTTP response writer.
func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}
