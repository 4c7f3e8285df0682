// Package display shapes backend recommendation items into render-ready
// cards: poster URLs, year fallbacks, overview truncation, and the
// fixed five-column grid layout.
package display

import (
	"strconv"
	"strings"

	"github.com/filmrec/viewer/models"
)

const (
	// Columns is the fixed grid width, filled left to right.
	Columns = 5

	// overviewLimit is the maximum number of characters of overview
	// text shown on a card.
	overviewLimit = 160

	ellipsis = "…"
)

// Card is one movie cell in the grid.
type Card struct {
	MovieID   int
	Title     string
	Year      string
	PosterURL string
	Overview  string
}

// NewCard builds a card from a backend item. Absent year renders as
// "N/A"; absent poster leaves PosterURL empty so no image is shown.
func NewCard(m models.Movie, imageBase string) Card {
	card := Card{
		MovieID:  m.MovieID,
		Title:    m.Title,
		Year:     "N/A",
		Overview: truncateOverview(m.Overview),
	}
	if m.Year != nil {
		card.Year = strconv.Itoa(*m.Year)
	}
	if m.PosterPath != "" {
		card.PosterURL = PosterURL(m.PosterPath, imageBase)
	}
	return card
}

// Rows lays items out into rows of Columns cards, preserving the
// backend's response order.
func Rows(items []models.Movie, imageBase string) [][]Card {
	var rows [][]Card
	for start := 0; start < len(items); start += Columns {
		end := start + Columns
		if end > len(items) {
			end = len(items)
		}
		row := make([]Card, 0, end-start)
		for _, m := range items[start:end] {
			row = append(row, NewCard(m, imageBase))
		}
		rows = append(rows, row)
	}
	return rows
}

// PosterURL joins a poster path onto the image CDN base. Paths that are
// already absolute URLs pass through untouched; the backend sometimes
// returns fully-joined poster URLs.
func PosterURL(path, imageBase string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return imageBase + path
}

// truncateOverview cuts overview text to overviewLimit characters and
// marks the cut with an ellipsis. Counts runes, not bytes.
func truncateOverview(s string) string {
	runes := []rune(s)
	if len(runes) <= overviewLimit {
		return s
	}
	return string(runes[:overviewLimit]) + ellipsis
}
