package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/export"
	"github.com/mrwolf/drmind/internal/models"
)

// ManifestFile records one JSON line per completed backup
const ManifestFile = "manifest.jsonl"

// EntryLister is the part of the store a backup reads
type EntryLister interface {
	ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error)
}

// Manager snapshots all entries into a dated JSON file
type Manager struct {
	dir   string
	store EntryLister
	clock clockwork.Clock
}

func NewManager(dir string, store EntryLister, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{dir: dir, store: store, clock: clock}
}

type manifestLine struct {
	File    string `json:"file"`
	Entries int    `json:"entries"`
	TakenAt string `json:"taken_at"`
}

// Run writes the snapshot and returns its path. A second run on the same day
// replaces that day's file.
func (m *Manager) Run(ctx context.Context) (string, error) {
	entries, err := m.store.ListEntries(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("listing entries: %w", err)
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, entries); err != nil {
		return "", err
	}

	now := m.clock.Now()
	path := filepath.Join(m.dir, export.Filename(export.JSON, now))
	if err := WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	line, err := json.Marshal(manifestLine{File: filepath.Base(path), Entries: len(entries), TakenAt: now.UTC().Format("2006-01-02T15:04:05Z")})
	if err != nil {
		return "", fmt.Errorf("encoding manifest line: %w", err)
	}
	if err := AppendLine(filepath.Join(m.dir, ManifestFile), line); err != nil {
		return "", fmt.Errorf("updating manifest: %w", err)
	}

	log.Info().Str("path", path).Int("entries", len(entries)).Msg("Backup written")
	return path, nil
}
