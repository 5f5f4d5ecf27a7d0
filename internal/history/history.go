// Package history keeps an audit trail of fetch runs in a local sqlite file.
// It is never consulted to decide whether an input needs downloading.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"aoc-inputs/internal/models"
)

var ErrNoRun = errors.New("no run in progress")

// fixed width so timestamps sort as text
const timeFormat = "2006-01-02T15:04:05.000000000Z"

type History struct {
	readDB  *sql.DB
	writeDB *sql.DB
	runID   string
	now     func() time.Time
}

func Open(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	h := &History{writeDB: writeDB, now: time.Now}
	if err := h.init(); err != nil {
		h.Close()
		return nil, err
	}

	// the file has to exist before it can be opened read-only
	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	h.readDB = readDB
	return h, nil
}

func (h *History) init() error {
	_, err := h.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT '',
			downloaded  INTEGER NOT NULL DEFAULT 0,
			skipped     INTEGER NOT NULL DEFAULT 0,
			error       TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS downloads (
			run_id     TEXT NOT NULL,
			year       INTEGER NOT NULL,
			day        INTEGER NOT NULL,
			bytes      INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_downloads_fetched ON downloads(fetched_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	var errs []error
	if h.readDB != nil {
		errs = append(errs, h.readDB.Close())
	}
	if h.writeDB != nil {
		errs = append(errs, h.writeDB.Close())
	}
	return errors.Join(errs...)
}

// BeginRun starts a new run and returns its id. Downloads recorded after
// this belong to it.
func (h *History) BeginRun() (string, error) {
	id := uuid.NewString()
	_, err := h.writeDB.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`, id, h.stamp())
	if err != nil {
		return "", fmt.Errorf("starting run: %w", err)
	}
	h.runID = id
	return id, nil
}

// RecordDownload notes a successful download in the current run.
func (h *History) RecordDownload(p models.Puzzle, size int) error {
	if h.runID == "" {
		return ErrNoRun
	}
	_, err := h.writeDB.Exec(`
		INSERT INTO downloads (run_id, year, day, bytes, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, h.runID, p.Year, p.Day, size, h.stamp())
	if err != nil {
		return fmt.Errorf("recording %s: %w", p, err)
	}
	return nil
}

// FinishRun closes the current run with its counts and error, if any.
func (h *History) FinishRun(downloaded, skipped int, runErr error) error {
	if h.runID == "" {
		return ErrNoRun
	}
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	_, err := h.writeDB.Exec(`
		UPDATE runs SET finished_at = ?, downloaded = ?, skipped = ?, error = ?
		WHERE id = ?
	`, h.stamp(), downloaded, skipped, msg, h.runID)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	h.runID = ""
	return nil
}

// Downloads returns the most recent downloads, newest first.
func (h *History) Downloads(limit int) ([]Download, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.readDB.Query(`
		SELECT run_id, year, day, bytes, fetched_at FROM downloads
		ORDER BY fetched_at DESC, year DESC, day DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	var out []Download
	for rows.Next() {
		var (
			d  Download
			ts string
		)
		if err := rows.Scan(&d.RunID, &d.Year, &d.Day, &d.Bytes, &ts); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		d.FetchedAt, _ = time.Parse(timeFormat, ts)
		out = append(out, d)
	}
	return out, rows.Err()
}

// LastRun returns the most recently started run, or nil if there is none.
func (h *History) LastRun() (*Run, error) {
	var (
		r                 Run
		started, finished string
	)
	err := h.readDB.QueryRow(`
		SELECT id, started_at, finished_at, downloaded, skipped, error FROM runs
		ORDER BY started_at DESC LIMIT 1
	`).Scan(&r.ID, &started, &finished, &r.Downloaded, &r.Skipped, &r.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last run: %w", err)
	}
	r.StartedAt, _ = time.Parse(timeFormat, started)
	r.FinishedAt, _ = time.Parse(timeFormat, finished)
	return &r, nil
}

func (h *History) stamp() string {
	return h.now().UTC().Format(timeFormat)
}
