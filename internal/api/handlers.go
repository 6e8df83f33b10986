package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/export"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/models"
	"github.com/mrwolf/drmind/internal/responder"
	"github.com/mrwolf/drmind/internal/sentiment"
	"github.com/mrwolf/drmind/internal/signals"
)

const (
	// Version is reported by the health endpoint
	Version          = "1.0.0"
	// MaxJournalLength caps a submitted journal, counted in runes
	MaxJournalLength = 10000

	chartPoints = 10
	themeWindow = 30
	themeTerms  = 5
)

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Encoding response failed")
	}
}

// Store is the entry persistence the handlers need
type Store interface {
	AppendEntry(ctx context.Context, e *models.JournalEntry) (int64, error)
	ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error)
	Stats(ctx context.Context) (models.Stats, error)
	Ping(ctx context.Context) error
}

// Responder produces the comfort message and suggestions for an entry
type Responder interface {
	Run(ctx context.Context, mood, journal string, sentiment float64) responder.Result
}

// StatusBoard reports the last provider probe
type StatusBoard interface {
	Snapshot() map[string]string
}

// Deps are the collaborators wired into the router
type Deps struct {
	Store     Store
	Responder Responder
	Scorer    sentiment.Scorer
	Board     StatusBoard
	Random    fallback.Source
	Clock     clockwork.Clock
}

// Handlers serves the journal pages and JSON API
type Handlers struct {
	store     Store
	responder Responder
	scorer    sentiment.Scorer
	board     StatusBoard
	random    fallback.Source
	clock     clockwork.Clock
	pages     *pages
}

// NewHandlers parses the page templates and wires the dependencies
func NewHandlers(d Deps) (*Handlers, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	h := &Handlers{
		store:     d.Store,
		responder: d.Responder,
		scorer:    d.Scorer,
		board:     d.Board,
		random:    d.Random,
		clock:     d.Clock,
		pages:     p,
	}
	if h.scorer == nil {
		h.scorer = sentiment.NewLexicon()
	}
	if h.random == nil {
		h.random = fallback.NewRandomSource()
	}
	if h.clock == nil {
		h.clock = clockwork.NewRealClock()
	}
	return h, nil
}

// validationError is a user input problem, reported as 400
type validationError struct {
	message string
	code    string
}

func (e *validationError) Error() string { return e.message }

func validateSubmission(mood, journal string) error {
	if mood == "" || journal == "" {
		return &validationError{"Please select a mood and write a journal entry!", "MISSING_FIELDS"}
	}
	if _, ok := models.LookupMood(mood); !ok {
		return &validationError{fmt.Sprintf("unknown mood %q", mood), "UNKNOWN_MOOD"}
	}
	if utf8.RuneCountInString(journal) > MaxJournalLength {
		return &validationError{fmt.Sprintf("journal must be at most %d characters", MaxJournalLength), "JOURNAL_TOO_LONG"}
	}
	return nil
}

// createEntry scores, responds to and stores one submission
func (h *Handlers) createEntry(ctx context.Context, mood, journal string) (*models.JournalEntry, error) {
	mood = strings.TrimSpace(mood)
	journal = strings.TrimSpace(journal)
	if err := validateSubmission(mood, journal); err != nil {
		return nil, err
	}

	score := h.scorer.Score(journal)
	res := h.responder.Run(ctx, mood, journal, score)

	entry := &models.JournalEntry{
		Mood:        mood,
		Journal:     journal,
		Sentiment:   score,
		Comfort:     res.Comfort,
		Suggestions: res.Suggestions,
		Source:      res.Source.String(),
		CreatedAt:   h.clock.Now(),
	}
	if _, err := h.store.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	log.Info().
		Str("ref", entry.Ref).
		Str("mood", mood).
		Float64("sentiment", score).
		Str("source", entry.Source).
		Msg("Entry saved")
	return entry, nil
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    "ok",
		Database:  h.checkDatabase(r.Context()),
		Providers: map[string]string{},
		Version:   Version,
	}
	if resp.Database != "connected" {
		resp.Status = "degraded"
	}
	if h.board != nil {
		resp.Providers = h.board.Snapshot()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "connected"
}

// CreateEntry handles POST /api/v1/entries
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	entry, err := h.createEntry(r.Context(), req.Mood, req.Journal)
	if err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.message, ve.code)
			return
		}
		log.Error().Err(err).Msg("Creating entry failed")
		writeError(w, http.StatusInternalServerError, "failed to save entry", "SAVE_FAILED")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/v1/entries
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "INVALID_LIMIT")
			return
		}
		limit = n
	}

	entries, err := h.store.ListEntries(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Listing entries failed")
		writeError(w, http.StatusInternalServerError, "failed to list entries", "LIST_FAILED")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}

	writeJSON(w, http.StatusOK, models.EntriesResponse{Entries: entries})
}

// Moods handles GET /api/v1/moods
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Moods)
}

type statsResponse struct {
	models.Stats
	Chart  []models.ChartPoint `json:"chart"`
	Themes signals.Themes      `json:"themes"`
}

// Stats handles GET /api/v1/stats
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Computing stats failed")
		writeError(w, http.StatusInternalServerError, "failed to compute stats", "STATS_FAILED")
		return
	}
	recent, err := h.store.ListEntries(r.Context(), themeWindow)
	if err != nil {
		log.Error().Err(err).Msg("Listing entries failed")
		writeError(w, http.StatusInternalServerError, "failed to compute stats", "STATS_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:  stats,
		Chart:  chartData(recent),
		Themes: signals.Analyze(recent, themeTerms),
	})
}

// chartData turns newest-first entries into the last chartPoints samples in
// chronological order
func chartData(entries []models.JournalEntry) []models.ChartPoint {
	if len(entries) > chartPoints {
		entries = entries[:chartPoints]
	}
	points := make([]models.ChartPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		points = append(points, models.ChartPoint{
			Date:      entries[i].CreatedAt.Format("2006-01-02"),
			Sentiment: entries[i].Sentiment,
		})
	}
	return points
}

// Export returns a handler serving all entries as an attachment
func (h *Handlers) Export(f export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.store.ListEntries(r.Context(), 0)
		if err != nil {
			log.Error().Err(err).Str("format", string(f)).Msg("Export failed")
			w.Header().Set("Content-Type", "application/json")
			writeError(w, http.StatusInternalServerError, "failed to export entries", "EXPORT_FAILED")
			return
		}

		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(f, h.clock.Now())))
		if err := export.Write(w, f, entries); err != nil {
			log.Error().Err(err).Str("format", string(f)).Msg("Writing export failed")
		}
	}
}
