// Package store keeps a history of checks in Postgres. It is only used
// when a database URL is configured.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkdeck_runs (
	id           SERIAL PRIMARY KEY,
	deck_path    TEXT NOT NULL,
	provider     TEXT NOT NULL DEFAULT '',
	model        TEXT NOT NULL DEFAULT '',
	total_slides INTEGER NOT NULL,
	issue_count  INTEGER NOT NULL,
	transcripts  JSONB NOT NULL,
	result       JSONB,
	report_path  TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// RunSummary is one row of the run history
type RunSummary struct {
	ID          int64     `json:"id"`
	DeckPath    string    `json:"deck_path"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	TotalSlides int       `json:"total_slides"`
	IssueCount  int       `json:"issue_count"`
	ReportPath  string    `json:"report_path"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

// NewConnection opens and pings a Postgres connection.
func NewConnection(connectStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	slog.Debug("Database connection established")
	return db, nil
}

// Open connects to connectStr and creates the runs table if needed.
func Open(ctx context.Context, connectStr string) (*Store, error) {
	db, err := NewConnection(connectStr)
	if err != nil {
		return nil, err
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the runs table.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// SaveRun inserts run and returns its id.
func (s *Store) SaveRun(ctx context.Context, run *models.Run) (int64, error) {
	transcripts, err := json.Marshal(run.Transcripts)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transcripts: %w", err)
	}

	var result sql.NullString
	if run.Result != nil {
		data, err := json.Marshal(run.Result)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal result: %w", err)
		}
		result = sql.NullString{String: string(data), Valid: true}
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO checkdeck_runs (deck_path, provider, model, total_slides, issue_count, transcripts, result, report_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err = s.db.QueryRowContext(ctx, query,
		run.DeckPath, run.Provider, run.Model, run.TotalSlides, run.IssueCount(),
		string(transcripts), result, run.ReportPath, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, deck_path, provider, model, total_slides, issue_count, report_path, created_at
		FROM checkdeck_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.DeckPath, &r.Provider, &r.Model, &r.TotalSlides, &r.IssueCount, &r.ReportPath, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
