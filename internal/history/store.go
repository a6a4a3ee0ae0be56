// Package history records media submissions and their outcomes in a local
// SQLite database so past analyses can be listed without hitting the API.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Source types recorded for a submission.
const (
	SourceTypeFile   = "file"
	SourceTypeSocial = "social"
)

// Submission is one recorded upload and its latest known outcome.
type Submission struct {
	ID         int64
	RequestID  string
	MediaID    string
	Source     string
	SourceType string
	BatchID    string
	Status     string
	Score      *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store manages submission history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const submissionColumns = `id, request_id, media_id, source, source_type, batch_id, status, score, created_at, updated_at`

// Record inserts a new submission. An existing row for the same request id
// is replaced; re-running a command for the same upload is not an error.
func (s *Store) Record(ctx context.Context, sub Submission) (*Submission, error) {
	if strings.TrimSpace(sub.RequestID) == "" {
		return nil, errors.New("request id cannot be empty")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO submissions (
            request_id, media_id, source, source_type, batch_id,
            status, score, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(request_id) DO UPDATE SET
            media_id = excluded.media_id,
            source = excluded.source,
            source_type = excluded.source_type,
            batch_id = excluded.batch_id,
            status = excluded.status,
            score = excluded.score,
            updated_at = excluded.updated_at`,
		sub.RequestID,
		nullableString(sub.MediaID),
		sub.Source,
		sub.SourceType,
		nullableString(sub.BatchID),
		sub.Status,
		sub.Score,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	return s.GetByRequestID(ctx, sub.RequestID)
}

// UpdateOutcome records the latest status and score for a request id.
func (s *Store) UpdateOutcome(ctx context.Context, requestID, status string, score *float64) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE submissions SET status = ?, score = ?, updated_at = ? WHERE request_id = ?`,
		status,
		score,
		timestamp,
		requestID,
	)
	if err != nil {
		return fmt.Errorf("update outcome: %w", err)
	}
	return nil
}

// GetByRequestID fetches a submission by request id, nil if absent.
func (s *Store) GetByRequestID(ctx context.Context, requestID string) (*Submission, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE request_id = ?`,
		requestID,
	)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// List returns the most recent submissions, newest first. A limit of zero
// or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

// ListByBatch returns all submissions that belong to a batch, in insertion
// order.
func (s *Store) ListByBatch(ctx context.Context, batchID string) ([]*Submission, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list batch submissions: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

// Clear deletes all recorded submissions and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions`)
	if err != nil {
		return 0, fmt.Errorf("clear submissions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Count returns the number of recorded submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM submissions`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	var (
		sub       Submission
		mediaID   sql.NullString
		batchID   sql.NullString
		score     sql.NullFloat64
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&sub.ID,
		&sub.RequestID,
		&mediaID,
		&sub.Source,
		&sub.SourceType,
		&batchID,
		&sub.Status,
		&score,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.MediaID = mediaID.String
	sub.BatchID = batchID.String
	if score.Valid {
		value := score.Float64
		sub.Score = &value
	}

	if sub.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if sub.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &sub, nil
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
