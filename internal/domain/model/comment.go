package model

import "time"

// Comment represents a top-level comment on an issue or pull request
// (from the GitHub Issues API, not the review comments API).
type Comment struct {
	ID        int64
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
