// Package history provides suggestion-request persistence using SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Status represents the outcome of a suggestion request.
type Status string

const (
	// StatusPending means the request has been accepted but not finished.
	StatusPending Status = "pending"
	// StatusComplete means recipes were returned to the caller.
	StatusComplete Status = "complete"
	// StatusRejected means the list contained no food items (HTTP 400).
	StatusRejected Status = "rejected"
	// StatusError means the request failed upstream (HTTP 500).
	StatusError Status = "error"
)

// Record is one suggestion request and its outcome.
type Record struct {
	ID        string          `json:"id"`
	Items     []string        `json:"items"`
	Result    json.RawMessage `json:"result,omitempty"`
	Status    Status          `json:"status"`
	Detail    string          `json:"detail,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store manages suggestion records in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS suggestions (
			id         TEXT PRIMARY KEY,
			items      TEXT NOT NULL,
			result     TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'pending',
			detail     TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT (datetime('now')),
			updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_suggestions_created_at
			ON suggestions(created_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new record.
func (s *Store) Create(rec *Record) error {
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO suggestions (id, items, status, detail, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, string(items), rec.Status, rec.Detail, rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

// Update updates the mutable fields of a record.
func (s *Store) Update(rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()
	result := ""
	if rec.Result != nil {
		result = string(rec.Result)
	}
	_, err := s.db.Exec(
		`UPDATE suggestions SET result = ?, status = ?, detail = ?, updated_at = ?
		 WHERE id = ?`,
		result, rec.Status, rec.Detail, rec.UpdatedAt, rec.ID,
	)
	return err
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, items, result, status, detail, created_at, updated_at
		 FROM suggestions WHERE id = ?`, id,
	)
	return scanRecord(row)
}

// List returns all records ordered by creation time (newest first).
func (s *Store) List() ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, items, result, status, detail, created_at, updated_at
		 FROM suggestions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// --- Scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*Record, error) {
	rec := &Record{}
	var items, result string
	err := row.Scan(
		&rec.ID, &items, &result, &rec.Status, &rec.Detail,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
		return nil, fmt.Errorf("decoding items for record %s: %w", rec.ID, err)
	}
	if result != "" {
		rec.Result = json.RawMessage(result)
	}
	return rec, nil
}
