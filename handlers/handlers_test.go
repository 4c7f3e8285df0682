package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/filmrec/viewer/lib/api"
	"github.com/filmrec/viewer/lib/config"
	"github.com/filmrec/viewer/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(apiBaseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:    apiBaseURL,
		TMDBImageBase: "https://image.tmdb.org/t/p/w342",
	}
}

func homeHandler(t *testing.T, backend http.HandlerFunc) http.HandlerFunc {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	cfg := testConfig(srv.URL)
	return HandleHome(cfg, api.NewClient(srv.URL, testLogger()), testLogger())
}

func TestHandleHome_NoStoreFallsBackToNumericInput(t *testing.T) {
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without a fetch action")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{`type="number"`, `name="user"`, `min="1"`, `step="1"`, `value="1"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, `class="grid-row"`) {
		t.Error("body contains a grid without any fetch")
	}
}

func TestHandleHome_FetchRendersGrid(t *testing.T) {
	year := 1999
	var gotPath, gotQuery string
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		resp := models.RecommendationsResponse{
			UserID: 7,
			Items: []models.Movie{{
				MovieID:    42,
				Title:      "Foo",
				Year:       &year,
				PosterPath: "/x.jpg",
				Overview:   strings.Repeat("A", 200),
			}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?user=7&limit=10&fetch=1", nil))

	if gotPath != "/recommendations/7" {
		t.Errorf("backend path = %q, want /recommendations/7", gotPath)
	}
	if gotQuery != "limit=10" {
		t.Errorf("backend query = %q, want limit=10", gotQuery)
	}

	body := w.Body.String()
	if !strings.Contains(body, strings.Repeat("A", 160)+"…") {
		t.Error("body missing truncated overview with ellipsis")
	}
	if strings.Contains(body, strings.Repeat("A", 161)) {
		t.Error("overview not cut at 160 characters")
	}
	if !strings.Contains(body, `src="https://image.tmdb.org/t/p/w342/x.jpg"`) {
		t.Error("body missing poster image URL")
	}
	if !strings.Contains(body, "<strong>Foo</strong> (1999)") {
		t.Error("body missing title and year")
	}
	// One rating trigger and outcome slot per {user, movie, rating}.
	for r := 1; r <= 5; r++ {
		if !strings.Contains(body, `id="rate-7-42-`+string(rune('0'+r))+`"`) {
			t.Errorf("body missing rating trigger for value %d", r)
		}
		if !strings.Contains(body, `id="slot-7-42-`+string(rune('0'+r))+`"`) {
			t.Errorf("body missing outcome slot for value %d", r)
		}
	}
}

func TestHandleHome_EmptyItems(t *testing.T) {
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"items": []}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?user=1&limit=10&fetch=1", nil))

	body := w.Body.String()
	if !strings.Contains(body, "No recommendations available.") {
		t.Error("body missing no-recommendations message")
	}
	if strings.Contains(body, `class="card"`) {
		t.Error("body contains grid cells for an empty result")
	}
}

func TestHandleHome_BackendError(t *testing.T) {
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?user=1&limit=10&fetch=1", nil))

	body := w.Body.String()
	if !strings.Contains(body, "500") || !strings.Contains(body, "boom") {
		t.Error("error message missing status code or body text")
	}
	if strings.Contains(body, `class="grid-row"`) {
		t.Error("body contains a grid after a failed fetch")
	}
}

func TestHandleHome_ClampsLimit(t *testing.T) {
	var gotQuery string
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if _, err := w.Write([]byte(`{"items": []}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?user=1&limit=500&fetch=1", nil))

	if gotQuery != "limit=50" {
		t.Errorf("backend query = %q, want limit=50", gotQuery)
	}
}

func TestHandleRate(t *testing.T) {
	var gotEvent models.RatingEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interact" {
			t.Errorf("backend path = %q, want /interact", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotEvent); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()

	handler := HandleRate(api.NewClient(srv.URL, testLogger()), testLogger())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rate", strings.NewReader(`{"user_id": 7, "movie_id": 42, "rating": 5}`))
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	want := models.RatingEvent{UserID: 7, MovieID: 42, Rating: 5}
	if gotEvent != want {
		t.Errorf("backend received %+v, want %+v", gotEvent, want)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" || resp["message"] != "Feedback recorded" {
		t.Errorf("response = %v", resp)
	}
}

func TestHandleRate_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	handler := HandleRate(api.NewClient(srv.URL, testLogger()), testLogger())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rate", strings.NewReader(`{"user_id": 7, "movie_id": 42, "rating": 5}`))
	handler(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "error" || resp["message"] != "Failed: 503" {
		t.Errorf("response = %v", resp)
	}
}

func TestHandleRate_InvalidInput(t *testing.T) {
	handler := HandleRate(api.NewClient("http://127.0.0.1:1", testLogger()), testLogger())

	tests := []struct {
		name string
		body string
	}{
		{name: "rating too high", body: `{"user_id": 7, "movie_id": 42, "rating": 6}`},
		{name: "rating zero", body: `{"user_id": 7, "movie_id": 42, "rating": 0}`},
		{name: "missing user", body: `{"movie_id": 42, "rating": 3}`},
		{name: "not json", body: `rating=5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/rate", strings.NewReader(tt.body))
			handler(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestHandleHome_UserSelectFromStorelessDefault(t *testing.T) {
	// With user and limit in the query but no fetch flag, the form echoes
	// the values without touching the backend.
	handler := homeHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without a fetch action")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?user=9&limit=25", nil))

	body := w.Body.String()
	if !strings.Contains(body, `value="9"`) {
		t.Error("body missing echoed user id")
	}
	if !strings.Contains(body, `value="25"`) {
		t.Error("body missing echoed limit")
	}
}
