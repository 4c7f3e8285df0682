package validation

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/filmrec/viewer/models"
)

const (
	minLimit = 1
	maxLimit = 50
)

// ValidateRatingEvent checks a rating submission before it is proxied
// to the backend. Ids must be positive and the rating must be one of
// the five fixed values.
func ValidateRatingEvent(event models.RatingEvent) error {
	if event.UserID < 1 {
		return fmt.Errorf("user_id must be greater than 0")
	}
	if event.MovieID < 1 {
		return fmt.Errorf("movie_id must be greater than 0")
	}
	if event.Rating < 1 || event.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// ClampLimit forces a recommendation count into [1, 50]. The page
// control already bounds it; this re-bounds hand-edited query strings.
func ClampLimit(limit int) int {
	if limit < minLimit {
		return minLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// ClampUserID forces a user id to be positive.
func ClampUserID(userID int) int {
	if userID < 1 {
		return 1
	}
	return userID
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"status":  "error",
		"message": message,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
