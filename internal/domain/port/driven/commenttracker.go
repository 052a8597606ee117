package driven

import (
	"context"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// CommentTracker defines the driven port for reading and writing top-level
// comments on an issue or pull request.
type CommentTracker interface {
	// ListIssueComments returns the comments on the issue in the order the
	// tracker returns them. Implementations may return only the first page.
	ListIssueComments(ctx context.Context, issue model.IssueRef) ([]model.Comment, error)

	// UpdateIssueComment replaces the body of an existing comment.
	UpdateIssueComment(ctx context.Context, issue model.IssueRef, commentID int64, body string) (*model.Comment, error)

	// CreateIssueComment adds a new comment to the issue.
	CreateIssueComment(ctx context.Context, issue model.IssueRef, body string) (*model.Comment, error)
}
