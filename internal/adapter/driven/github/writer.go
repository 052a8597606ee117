package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// UpdateIssueComment replaces the body of an existing issue comment.
// GitHub addresses issue comments by repository and ID; the issue number is
// only used for logging and error context.
func (c *Client) UpdateIssueComment(ctx context.Context, issue model.IssueRef, commentID int64, body string) (*model.Comment, error) {
	comment, resp, err := c.gh.Issues.EditComment(ctx, issue.Owner, issue.Repo, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return nil, fmt.Errorf("updating comment %d on %s: %w", commentID, issue, err)
	}

	logRateLimit(resp, issue.String()+"/edit-comment", 0, 1)

	updated := mapIssueComment(comment)
	return &updated, nil
}

// CreateIssueComment adds a top-level comment to the issue via the Issues API.
func (c *Client) CreateIssueComment(ctx context.Context, issue model.IssueRef, body string) (*model.Comment, error) {
	comment, resp, err := c.gh.Issues.CreateComment(ctx, issue.Owner, issue.Repo, issue.Number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return nil, fmt.Errorf("creating comment on %s: %w", issue, err)
	}

	logRateLimit(resp, issue.String()+"/create-comment", 0, 1)

	created := mapIssueComment(comment)
	return &created, nil
}
