package model

import "time"

// HistoryEntry is one successful upsert recorded in the local run history.
type HistoryEntry struct {
	ID           int64
	RepoFullName string
	IssueNumber  int
	CommentID    int64
	Action       UpsertAction
	BodySHA256   string
	BodyBytes    int
	RecordedAt   time.Time
}
