package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/filmrec/viewer/models"
)

const (
	recommendationTimeout = 15 * time.Second
	ratingTimeout         = 10 * time.Second
	healthTimeout         = 5 * time.Second
)

// StatusError is returned when the backend answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Body)
}

// Client talks to the recommendation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Recommendations fetches up to limit recommended movies for a user.
// A missing or empty items array in the response is returned as an
// empty slice, not an error.
func (c *Client) Recommendations(ctx context.Context, userID, limit int) ([]models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, recommendationTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/recommendations/%d?limit=%d", c.baseURL, userID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var result models.RecommendationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Items, nil
}

// SubmitRating records one rating event with the backend. Anything but
// a 200 response is an error; the event is never retried.
func (c *Client) SubmitRating(ctx context.Context, event models.RatingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, ratingTimeout)
	defer cancel()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode rating: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/interact", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit rating: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	return nil
}

// Healthz probes the backend's health endpoint.
func (c *Client) Healthz(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read error response body", slog.Any("error", err))
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Error("failed to close response body", slog.Any("error", err))
	}
}
