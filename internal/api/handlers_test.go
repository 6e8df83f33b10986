package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mrwolf/drmind/internal/config"
	"github.com/mrwolf/drmind/internal/db"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/llm"
	"github.com/mrwolf/drmind/internal/models"
	"github.com/mrwolf/drmind/internal/responder"
	"github.com/mrwolf/drmind/internal/signals"
)

type stubProvider struct {
	res models.ResponseResult
	err error
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Generate(ctx context.Context, req llm.Request) (models.ResponseResult, error) {
	return s.res, s.err
}

type staticBoard map[string]string

func (b staticBoard) Snapshot() map[string]string { return b }

type testServer struct {
	*httptest.Server
	db    *db.DB
	clock *clockwork.FakeClock
}

func setupTestServer(t *testing.T, providerA llm.Provider, rateLimit int) (*testServer, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "drmind-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}

	database, err := db.Open(tmpDir + "/test.db")
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("opening database: %v", err)
	}

	cfg := &config.Config{
		Submit: config.Submit{RateLimit: rateLimit, RateWindow: time.Minute},
	}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC))
	orch := responder.New(providerA, nil, nil, fallback.NewEngine(fallback.NewSource(42)))

	router, err := NewRouter(cfg, Deps{
		Store:     database,
		Responder: orch,
		Board:     staticBoard{"huggingface": "ok", "cohere": "unconfigured", "gemini": "unknown"},
		Random:    fallback.NewSource(1),
		Clock:     clock,
	})
	if err != nil {
		database.Close()
		os.RemoveAll(tmpDir)
		t.Fatalf("creating router: %v", err)
	}
	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		database.Close()
		os.RemoveAll(tmpDir)
	}

	return &testServer{Server: server, db: database, clock: clock}, cleanup
}

// noRedirect lets tests inspect the 303 after a form post
var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error { return http.ErrUseLastResponse },
}

func postEntry(t *testing.T, srv *testServer, mood, journal string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(models.SubmitRequest{Mood: mood, Journal: journal})
	resp, err := http.Post(srv.URL+"/api/v1/entries", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/v1/entries: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	var body models.HealthResponse
	json.NewDecoder(resp.Body).Decode(&body)

	if body.Status != "ok" || body.Database != "connected" {
		t.Errorf("unexpected health %+v", body)
	}
	if body.Version != Version {
		t.Errorf("expected version %s, got %s", Version, body.Version)
	}
	if body.Providers["cohere"] != "unconfigured" {
		t.Errorf("providers = %v", body.Providers)
	}
}

func TestCreateEntryFallback(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	resp := postEntry(t, srv, "Anxious", "I have a huge exam tomorrow and I can't stop worrying")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var entry models.JournalEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if entry.Ref == "" || entry.ID == 0 {
		t.Errorf("expected stored entry, got %+v", entry)
	}
	if entry.Source != "fallback" {
		t.Errorf("source = %q, want fallback", entry.Source)
	}
	if !strings.Contains(entry.Comfort, "Academic challenges") {
		t.Errorf("comfort = %q", entry.Comfort)
	}
	if len(entry.Suggestions) != models.SuggestionCount {
		t.Errorf("suggestions = %v", entry.Suggestions)
	}
	if entry.Sentiment >= 0 {
		t.Errorf("expected negative sentiment, got %v", entry.Sentiment)
	}

	stored, err := srv.db.GetEntry(context.Background(), entry.Ref)
	if err != nil || stored == nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	if strings.Join(stored.Suggestions, "|") != strings.Join(entry.Suggestions, "|") {
		t.Errorf("stored suggestions %v differ from response %v", stored.Suggestions, entry.Suggestions)
	}
}

func TestCreateEntryUsesProvider(t *testing.T) {
	a := stubProvider{res: models.ResponseResult{Comfort: "You are heard.", Suggestions: []string{"Breathe"}}}
	srv, cleanup := setupTestServer(t, a, 10)
	defer cleanup()

	resp := postEntry(t, srv, "Sad", "rough day")
	defer resp.Body.Close()

	var entry models.JournalEntry
	json.NewDecoder(resp.Body).Decode(&entry)
	if entry.Source != "try_a" || entry.Comfort != "You are heard." {
		t.Errorf("unexpected entry %+v", entry)
	}
	if len(entry.Suggestions) != 3 || entry.Suggestions[0] != "Breathe" {
		t.Errorf("suggestions not padded: %v", entry.Suggestions)
	}
}

func TestCreateEntryValidation(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 100)
	defer cleanup()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"bad json", `{"mood":`, "INVALID_BODY"},
		{"missing mood", `{"journal":"hello"}`, "MISSING_FIELDS"},
		{"blank journal", `{"mood":"Joyful","journal":"   "}`, "MISSING_FIELDS"},
		{"unknown mood", `{"mood":"Hangry","journal":"hello"}`, "UNKNOWN_MOOD"},
		{"too long", `{"mood":"Joyful","journal":"` + strings.Repeat("a", MaxJournalLength+1) + `"}`, "JOURNAL_TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/entries", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
			var e ErrorResponse
			json.NewDecoder(resp.Body).Decode(&e)
			if e.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}

	entries, _ := srv.db.ListEntries(context.Background(), 0)
	if len(entries) != 0 {
		t.Errorf("invalid submissions were stored: %d", len(entries))
	}
}

func TestListEntriesAndStats(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 100)
	defer cleanup()

	journals := []struct{ mood, text string }{
		{"Joyful", "Wonderful day, I love it"},
		{"Sad", "I feel terrible and lonely"},
		{"Peaceful", "Quiet evening reading"},
	}
	for _, j := range journals {
		resp := postEntry(t, srv, j.mood, j.text)
		resp.Body.Close()
		srv.clock.Advance(time.Hour)
	}

	resp, err := http.Get(srv.URL + "/api/v1/entries?limit=2")
	if err != nil {
		t.Fatalf("GET entries: %v", err)
	}
	var list models.EntriesResponse
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list.Entries) != 2 || list.Entries[0].Mood != "Peaceful" {
		t.Errorf("expected newest first with limit, got %+v", list.Entries)
	}

	resp, err = http.Get(srv.URL + "/api/v1/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	var stats statsResponse
	json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if stats.TotalEntries != 3 {
		t.Errorf("total = %d", stats.TotalEntries)
	}
	if len(stats.Chart) != 3 {
		t.Fatalf("chart = %v", stats.Chart)
	}
	if stats.Chart[0].Sentiment <= stats.Chart[1].Sentiment {
		t.Errorf("chart should be chronological (joyful first): %v", stats.Chart)
	}
	if stats.Themes.Trend != signals.TrendUnknown {
		t.Errorf("three entries should not yield a trend, got %q", stats.Themes.Trend)
	}
	if len(stats.Themes.TopTerms) != 5 || stats.Themes.TopTerms[0].Term != "lonely" {
		t.Errorf("unexpected top terms: %v", stats.Themes.TopTerms)
	}

	bad, _ := http.Get(srv.URL + "/api/v1/entries?limit=abc")
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", bad.StatusCode)
	}
}

func TestMoodsEndpoint(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	resp, err := http.Get(srv.URL + "/api/v1/moods")
	if err != nil {
		t.Fatalf("GET moods: %v", err)
	}
	defer resp.Body.Close()

	var moods []models.MoodOption
	json.NewDecoder(resp.Body).Decode(&moods)
	if len(moods) != len(models.Moods) {
		t.Errorf("got %d moods, want %d", len(moods), len(models.Moods))
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestIndexPage(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	resp := postEntry(t, srv, "Grateful", "Thankful for my <b>friends</b>")
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/?saved=1")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	page := buf.String()

	for _, want := range []string{
		"How are you feeling today?",
		`value="Grateful"`,
		"Entry saved successfully",
		"Thankful for my &lt;b&gt;friends&lt;/b&gt;",
		"Total Entries",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "<b>friends</b>") {
		t.Error("journal text was not escaped")
	}

	found := false
	for _, q := range quotes {
		if strings.Contains(page, escapeApostrophes(q)) {
			found = true
		}
	}
	if !found {
		t.Error("page shows no quote from the list")
	}
}

// escapeApostrophes mirrors html/template's escaping of apostrophes in text
func escapeApostrophes(s string) string {
	return strings.ReplaceAll(s, "'", "&#39;")
}

func TestSubmitForm(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	form := url.Values{"mood": {"Exhausted"}, "journal": {"Long shift at work"}}
	resp, err := noRedirect.PostForm(srv.URL+"/", form)
	if err != nil {
		t.Fatalf("POST /: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Location") != "/?saved=1" {
		t.Errorf("Location = %q", resp.Header.Get("Location"))
	}

	entries, _ := srv.db.ListEntries(context.Background(), 0)
	if len(entries) != 1 || entries[0].Mood != "Exhausted" {
		t.Errorf("unexpected stored entries %+v", entries)
	}
}

func TestSubmitFormValidation(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	form := url.Values{"mood": {""}, "journal": {"kept text"}}
	resp, err := noRedirect.PostForm(srv.URL+"/", form)
	if err != nil {
		t.Fatalf("POST /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "Please select a mood") || !strings.Contains(buf.String(), "kept text") {
		t.Error("expected error message and preserved journal in page")
	}
}

func TestSubmitRateLimit(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 2)
	defer cleanup()

	for i := 0; i < 2; i++ {
		resp := postEntry(t, srv, "Peaceful", "ok")
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, resp.StatusCode)
		}
	}

	resp := postEntry(t, srv, "Peaceful", "ok")
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", resp.Header.Get("Retry-After"))
	}

	// Reads are not limited
	get, _ := http.Get(srv.URL + "/api/v1/entries")
	get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for read, got %d", get.StatusCode)
	}

	srv.clock.Advance(61 * time.Second)
	resp = postEntry(t, srv, "Peaceful", "ok")
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected window to reset, got %d", resp.StatusCode)
	}
}

func TestExports(t *testing.T) {
	srv, cleanup := setupTestServer(t, nil, 10)
	defer cleanup()

	resp := postEntry(t, srv, "Joyful", "Great news,\ntoday")
	resp.Body.Close()

	tests := []struct {
		path        string
		contentType string
		filename    string
	}{
		{"/export", "application/json", "drmind_entries_20240506.json"},
		{"/export/csv", "text/csv; charset=utf-8", "drmind_entries_20240506.csv"},
		{"/export/txt", "text/plain; charset=utf-8", "drmind_entries_20240506.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()

			if resp.Header.Get("Content-Type") != tt.contentType {
				t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
			}
			if !strings.Contains(resp.Header.Get("Content-Disposition"), tt.filename) {
				t.Errorf("disposition = %q", resp.Header.Get("Content-Disposition"))
			}

			var buf bytes.Buffer
			buf.ReadFrom(resp.Body)
			switch tt.path {
			case "/export":
				var records []map[string]any
				if err := json.Unmarshal(buf.Bytes(), &records); err != nil || len(records) != 1 {
					t.Errorf("bad json export: %v %s", err, buf.String())
				}
			case "/export/csv":
				rows, err := csv.NewReader(&buf).ReadAll()
				if err != nil || len(rows) != 2 {
					t.Fatalf("bad csv export: %v", err)
				}
				if rows[1][3] != "Great news, today" {
					t.Errorf("journal column = %q", rows[1][3])
				}
			case "/export/txt":
				if !strings.Contains(buf.String(), "Entry #1") {
					t.Errorf("bad text export: %s", buf.String())
				}
			}
		})
	}
}

func TestChartData(t *testing.T) {
	var entries []models.JournalEntry
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 14; i >= 0; i-- {
		entries = append(entries, models.JournalEntry{Sentiment: float64(i) / 100, CreatedAt: base.AddDate(0, 0, i)})
	}

	points := chartData(entries)
	if len(points) != 10 {
		t.Fatalf("got %d points", len(points))
	}
	if points[0].Date != "2024-01-06" || points[9].Date != "2024-01-15" {
		t.Errorf("expected the 10 most recent in order, got %s..%s", points[0].Date, points[9].Date)
	}
	if len(chartData(nil)) != 0 {
		t.Error("expected empty chart for no entries")
	}
}
