package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/filmrec/viewer/lib/api"
	"github.com/filmrec/viewer/lib/config"
	"github.com/filmrec/viewer/lib/display"
	"github.com/filmrec/viewer/lib/metrics"
	"github.com/filmrec/viewer/lib/users"
	"github.com/filmrec/viewer/lib/validation"
	"github.com/filmrec/viewer/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(files ...string) (*template.Template, error) {
	return template.ParseFS(templateFS, files...)
}

// ratingValues are the five discrete rating triggers under each card.
var ratingValues = []int{1, 2, 3, 4, 5}

// pageData feeds the home template. Error, Info and Rows are mutually
// exclusive fetch outcomes; a render with Error or Info has no grid.
type pageData struct {
	Users   []int
	UserID  int
	Limit   int
	Ratings []int
	Error   string
	Info    string
	Rows    [][]display.Card
}

type errorData struct {
	Message string
}

func renderError(w http.ResponseWriter, message string, status int) {
	tmpl, err := parseTemplates("templates/base.html", "templates/error.html")
	if err != nil {
		slog.Error("Failed to parse error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if err := tmpl.Execute(w, errorData{Message: message}); err != nil {
		slog.Error("Failed to execute error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// HandleHome renders the viewer page. User resolution runs on every
// render; the backend fetch runs only when the form was submitted
// (the query string carries "fetch"). All fetch outcomes render inline
// into the same page.
func HandleHome(cfg *config.Config, client *api.Client, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data := pageData{
			Users:   users.Resolve(req.Context(), cfg.DatabaseURL, logger),
			UserID:  1,
			Limit:   10,
			Ratings: ratingValues,
		}
		if len(data.Users) > 0 {
			data.UserID = data.Users[0]
		}

		q := req.URL.Query()
		if v, err := strconv.Atoi(q.Get("user")); err == nil {
			data.UserID = validation.ClampUserID(v)
		}
		if v, err := strconv.Atoi(q.Get("limit")); err == nil {
			data.Limit = validation.ClampLimit(v)
		}

		if q.Get("fetch") != "" {
			start := time.Now()
			items, err := client.Recommendations(req.Context(), data.UserID, data.Limit)
			metrics.ObserveBackendRequest("recommendations", start)

			var statusErr *api.StatusError
			switch {
			case errors.As(err, &statusErr):
				metrics.FetchesTotal.WithLabelValues(metrics.OutcomeAPIError).Inc()
				data.Error = fmt.Sprintf("API error: %d %s", statusErr.StatusCode, statusErr.Body)
			case err != nil:
				metrics.FetchesTotal.WithLabelValues(metrics.OutcomeNetworkError).Inc()
				data.Error = fmt.Sprintf("Failed to fetch recommendations: %v", err)
			case len(items) == 0:
				metrics.FetchesTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
				data.Info = "No recommendations available."
			default:
				metrics.FetchesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
				data.Rows = display.Rows(items, cfg.TMDBImageBase)
			}
		}

		tmpl, err := parseTemplates("templates/base.html", "templates/home.html")
		if err != nil {
			slog.Error("Failed to parse template", slog.Any("error", err))
			renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
			return
		}

		if err := tmpl.Execute(w, data); err != nil {
			slog.Error("Failed to execute template", slog.Any("error", err))
			renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
		}
	}
}

// HandleRate proxies one rating event to the backend and reports the
// outcome as JSON for the card's status slot. Events are fire-and-
// forget: no retry, no de-duplication, every click is its own event.
func HandleRate(client *api.Client, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var event models.RatingEvent
		if err := json.NewDecoder(req.Body).Decode(&event); err != nil {
			validation.WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := validation.ValidateRatingEvent(event); err != nil {
			validation.WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}

		start := time.Now()
		err := client.SubmitRating(req.Context(), event)
		metrics.ObserveBackendRequest("interact", start)

		var statusErr *api.StatusError
		switch {
		case errors.As(err, &statusErr):
			metrics.RatingsTotal.WithLabelValues(metrics.OutcomeAPIError).Inc()
			validation.WriteError(w, fmt.Sprintf("Failed: %d", statusErr.StatusCode), http.StatusBadGateway)
		case err != nil:
			metrics.RatingsTotal.WithLabelValues(metrics.OutcomeNetworkError).Inc()
			validation.WriteError(w, fmt.Sprintf("Request failed: %v", err), http.StatusBadGateway)
		default:
			metrics.RatingsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
			logger.Info("rating recorded",
				slog.Int("user_id", event.UserID),
				slog.Int("movie_id", event.MovieID),
				slog.Int("rating", event.Rating))
			writeJSON(w, map[string]string{
				"status":  "ok",
				"message": "Feedback recorded",
			}, http.StatusOK)
		}
	}
}

func writeJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
