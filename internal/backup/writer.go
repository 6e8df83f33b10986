package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const writeAttempts = 3

// writeBackoff is the pause before the second attempt; it doubles after that
var writeBackoff = 100 * time.Millisecond

// WriteFileAtomic writes a backup file through a temp file in the same
// directory renamed over path, so readers never see a half-written export.
func WriteFileAtomic(path string, content []byte) error {
	return withRetry("writing backup", func() error { return writeFileAtomicOnce(path, content) })
}

// AppendLine appends one newline terminated record to a backup log,
// creating the file if needed.
func AppendLine(path string, line []byte) error {
	return withRetry("appending backup record", func() error { return appendLineOnce(path, line) })
}

func withRetry(what string, op func() error) error {
	var err error
	wait := writeBackoff
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt < writeAttempts {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("%s after %d attempts: %w", what, writeAttempts, err)
}

func writeFileAtomicOnce(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}

func appendLineOnce(path string, line []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	return f.Sync()
}
