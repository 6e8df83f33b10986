package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DigestDir is the subdirectory of the backup dir holding day summaries
const DigestDir = "digests"

// Digest is one day summary written as markdown with frontmatter
type Digest struct {
	ForDate string // "2024-01-15"
	Content string
}

// WriteDigest writes the summary for a date, replacing any earlier one
func (m *Manager) WriteDigest(d Digest) (string, error) {
	if d.ForDate == "" {
		return "", errors.New("digest date is required")
	}
	path := m.digestPath(d.ForDate)
	content := fmt.Sprintf("---\nid: %s\nfor_date: %s\ncreated: %s\n---\n\n%s\n",
		uuid.NewString(),
		d.ForDate,
		m.clock.Now().UTC().Format("2006-01-02T15:04:05Z"),
		d.Content,
	)
	if err := WriteFileAtomic(path, []byte(content)); err != nil {
		return "", fmt.Errorf("writing digest: %w", err)
	}
	return path, nil
}

// ReadDigest returns the stored digest for a date, or "" if there is none
func (m *Manager) ReadDigest(forDate string) (string, error) {
	b, err := os.ReadFile(m.digestPath(forDate))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading digest: %w", err)
	}
	return string(b), nil
}

func (m *Manager) digestPath(forDate string) string {
	return filepath.Join(m.dir, DigestDir, forDate+".md")
}
