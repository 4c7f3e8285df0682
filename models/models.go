package models

// Movie is a single recommendation item as returned by the backend.
// Everything except MovieID is optional display metadata.
type Movie struct {
	MovieID    int    `json:"movie_id"`
	Title      string `json:"title,omitempty"`
	Year       *int   `json:"year,omitempty"`
	PosterPath string `json:"poster_path,omitempty"`
	Overview   string `json:"overview,omitempty"`
}

// RecommendationsResponse is the body of GET /recommendations/{user_id}.
// Items may be absent entirely; callers treat that as empty.
type RecommendationsResponse struct {
	UserID int     `json:"user_id"`
	Items  []Movie `json:"items"`
}

// RatingEvent is a single 1-5 star feedback submission for one movie.
// It exists only for the duration of one POST /interact call.
type RatingEvent struct {
	UserID  int `json:"user_id"`
	MovieID int `json:"movie_id"`
	Rating  int `json:"rating"`
}
