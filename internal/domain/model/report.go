package model

import "errors"

// DefaultMarker identifies a previously posted eviction report among the
// comments on an issue. Matching is plain substring containment.
const DefaultMarker = "Suspected binary incompatible evictions across all projects (summary)"

// DefaultReportPath is where the report generator leaves its output.
const DefaultReportPath = "unique_evictions.txt"

// ErrReportUnreadable is returned when the report file is missing or cannot be read.
var ErrReportUnreadable = errors.New("report unreadable")

// Report is the externally generated text that becomes the comment body.
// Body holds the file contents verbatim.
type Report struct {
	Path string
	Body string
}

// UpsertOutcome records which mutation an upsert performed.
type UpsertOutcome struct {
	Action    UpsertAction
	CommentID int64  // Zero for a planned create.
	URL       string // Empty for dry runs.
	DryRun    bool
}
