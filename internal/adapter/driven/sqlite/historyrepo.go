package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
	"github.com/wellcomecollection/scala-libs/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// recordedAtLayout keeps a fixed fraction width so recorded_at sorts lexically.
const recordedAtLayout = "2006-01-02T15:04:05.000000000Z"

// defaultHistoryLimit caps ListRecent when the caller passes a non-positive limit.
const defaultHistoryLimit = 20

// HistoryRepo is the SQLite implementation of the HistoryStore port interface.
type HistoryRepo struct {
	db  *DB
	now func() time.Time
}

// NewHistoryRepo creates a new HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db, now: time.Now}
}

// Record appends a history entry. A zero RecordedAt is replaced with the current time.
func (r *HistoryRepo) Record(ctx context.Context, entry model.HistoryEntry) error {
	recordedAt := entry.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = r.now()
	}

	const query = `
		INSERT INTO run_history (repo_full_name, issue_number, comment_id, action, body_sha256, body_bytes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		entry.RepoFullName, entry.IssueNumber, entry.CommentID, string(entry.Action),
		entry.BodySHA256, entry.BodyBytes, recordedAt.UTC().Format(recordedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("insert history for %s#%d: %w", entry.RepoFullName, entry.IssueNumber, err)
	}

	return nil
}

// ListRecent returns at most limit entries, newest first.
func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	const query = `
		SELECT id, repo_full_name, issue_number, comment_id, action, body_sha256, body_bytes, recorded_at
		FROM run_history
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run history: %w", err)
	}

	return entries, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(s scanner) (*model.HistoryEntry, error) {
	var entry model.HistoryEntry
	var action, recordedAt string

	err := s.Scan(
		&entry.ID, &entry.RepoFullName, &entry.IssueNumber, &entry.CommentID,
		&action, &entry.BodySHA256, &entry.BodyBytes, &recordedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Action = model.UpsertAction(action)

	entry.RecordedAt, err = parseTime(recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at: %w", err)
	}

	return &entry, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
