package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrwolf/drmind/internal/models"
)

const schema = `
-- Journal entries, append only
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ref TEXT UNIQUE NOT NULL,
    mood TEXT NOT NULL,
    journal TEXT NOT NULL,
    sentiment REAL NOT NULL,
    comfort TEXT NOT NULL,
    suggestions TEXT NOT NULL,      -- JSON array, order preserved
    created_at TEXT NOT NULL
);

-- Scheduler job tracking
CREATE TABLE IF NOT EXISTS scheduler_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_type TEXT NOT NULL,
    status TEXT NOT NULL,
    started_at TEXT NOT NULL,
    completed_at TEXT,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
CREATE INDEX IF NOT EXISTS idx_scheduler_job ON scheduler_runs(job_type);
`

// entryTimeLayout is fixed width so created_at sorts lexically
const entryTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection for the health endpoint
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// AppendEntry stores a new entry and returns its id. Ref and CreatedAt are
// filled in when empty.
func (db *DB) AppendEntry(ctx context.Context, e *models.JournalEntry) (int64, error) {
	if e.Ref == "" {
		e.Ref = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Suggestions == nil {
		e.Suggestions = []string{}
	}

	suggestions, err := json.Marshal(e.Suggestions)
	if err != nil {
		return 0, fmt.Errorf("encoding suggestions: %w", err)
	}

	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO entries (ref, mood, journal, sentiment, comfort, suggestions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Ref, e.Mood, e.Journal, e.Sentiment, e.Comfort, string(suggestions), e.CreatedAt.UTC().Format(entryTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading entry id: %w", err)
	}
	e.ID = id
	return id, nil
}

// ListEntries returns entries newest first. limit <= 0 returns all of them.
func (db *DB) ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	query := `
		SELECT id, ref, mood, journal, sentiment, comfort, suggestions, created_at
		FROM entries
		ORDER BY created_at DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetEntry returns one entry by ref, or nil if it does not exist
func (db *DB) GetEntry(ctx context.Context, ref string) (*models.JournalEntry, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, ref, mood, journal, sentiment, comfort, suggestions, created_at
		FROM entries
		WHERE ref = ?
	`, ref)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var e models.JournalEntry
	var suggestions, createdStr string
	if err := row.Scan(&e.ID, &e.Ref, &e.Mood, &e.Journal, &e.Sentiment, &e.Comfort, &suggestions, &createdStr); err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &e.Suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions for entry %d: %w", e.ID, err)
	}
	e.CreatedAt, _ = time.Parse(entryTimeLayout, createdStr)
	return &e, nil
}

// Stats aggregates over all entries. Positive days counts entries above
// models.PositiveThreshold.
func (db *DB) Stats(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	var avg sql.NullFloat64
	var positive sql.NullInt64
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(sentiment), SUM(CASE WHEN sentiment > ? THEN 1 ELSE 0 END)
		FROM entries
	`, models.PositiveThreshold).Scan(&s.TotalEntries, &avg, &positive)
	if err != nil {
		return s, fmt.Errorf("computing stats: %w", err)
	}
	s.AvgSentiment = avg.Float64
	s.PositiveDays = int(positive.Int64)
	return s, nil
}

// SchedulerRun tracks a scheduler job execution
type SchedulerRun struct {
	ID           int64
	JobType      string
	Status       string
	StartedAt    time.Time
	CompletedAt  *time.Time
	ErrorMessage string
}

// StartSchedulerRun records the start of a scheduler job
func (db *DB) StartSchedulerRun(jobType string) (int64, error) {
	result, err := db.conn.Exec(`
		INSERT INTO scheduler_runs (job_type, status, started_at)
		VALUES (?, 'running', ?)
	`, jobType, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CompleteSchedulerRun marks a scheduler job as completed
func (db *DB) CompleteSchedulerRun(runID int64, errMsg string) error {
	status := "completed"
	if errMsg != "" {
		status = "failed"
	}
	_, err := db.conn.Exec(`
		UPDATE scheduler_runs
		SET status = ?, completed_at = ?, error_message = ?
		WHERE id = ?
	`, status, time.Now().UTC().Format(time.RFC3339), errMsg, runID)
	return err
}

// GetLastSchedulerRun returns the last run for a job type
func (db *DB) GetLastSchedulerRun(jobType string) (*SchedulerRun, error) {
	var run SchedulerRun
	var startedStr string
	var completedStr, errMsg sql.NullString
	err := db.conn.QueryRow(`
		SELECT id, job_type, status, started_at, completed_at, error_message
		FROM scheduler_runs
		WHERE job_type = ?
		ORDER BY id DESC
		LIMIT 1
	`, jobType).Scan(&run.ID, &run.JobType, &run.Status, &startedStr, &completedStr, &errMsg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.StartedAt, _ = time.Parse(time.RFC3339, startedStr)
	if completedStr.Valid {
		t, _ := time.Parse(time.RFC3339, completedStr.String)
		run.CompletedAt = &t
	}
	if errMsg.Valid {
		run.ErrorMessage = errMsg.String
	}
	return &run, nil
}
