package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/models"
	"github.com/mrwolf/drmind/internal/signals"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	index *template.Template
}

func loadPages() (*pages, error) {
	funcMap := template.FuncMap{
		"moodEmoji": func(label string) string {
			if m, ok := models.LookupMood(label); ok {
				return m.Emoji
			}
			return ""
		},
	}
	index, err := template.New("index.html").Funcs(funcMap).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &pages{index: index}, nil
}

type indexData struct {
	Moods        []models.MoodOption
	Entries      []models.JournalEntry
	Stats        models.Stats
	Chart        []models.ChartPoint
	Themes       signals.Themes
	Quote        string
	Saved        bool
	Error        string
	SelectedMood string
	Journal      string
}

// Index handles GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, http.StatusOK, indexData{Saved: r.URL.Query().Get("saved") == "1"})
}

// Submit handles POST / from the form
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderIndex(w, r, http.StatusBadRequest, indexData{Error: "invalid form submission"})
		return
	}
	mood := r.PostFormValue("mood")
	journal := r.PostFormValue("journal")

	if _, err := h.createEntry(r.Context(), mood, journal); err != nil {
		status := http.StatusInternalServerError
		msg := "Error saving entry, please try again."
		var ve *validationError
		if errors.As(err, &ve) {
			status = http.StatusBadRequest
			msg = ve.message
		} else {
			log.Error().Err(err).Msg("Saving entry from form failed")
		}
		h.renderIndex(w, r, status, indexData{Error: msg, SelectedMood: mood, Journal: journal})
		return
	}

	http.Redirect(w, r, "/?saved=1", http.StatusSeeOther)
}

func (h *Handlers) renderIndex(w http.ResponseWriter, r *http.Request, status int, data indexData) {
	ctx := r.Context()
	entries, err := h.store.ListEntries(ctx, 0)
	if err != nil {
		log.Error().Err(err).Msg("Listing entries failed")
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}
	stats, err := h.store.Stats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Computing stats failed")
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}

	data.Moods = models.Moods
	data.Entries = entries
	data.Stats = stats
	data.Chart = chartData(entries)
	if len(entries) > themeWindow {
		data.Themes = signals.Analyze(entries[:themeWindow], themeTerms)
	} else {
		data.Themes = signals.Analyze(entries, themeTerms)
	}
	data.Quote = fallback.Pick(h.random, quotes)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.index.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Rendering index failed")
	}
}
