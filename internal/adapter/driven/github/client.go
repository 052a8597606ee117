// Package github implements the CommentTracker port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
	"github.com/wellcomecollection/scala-libs/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CommentTracker = (*Client)(nil)

// commentsPerPage is the largest page size the Issues API accepts.
const commentsPerPage = 100

// Client implements the driven.CommentTracker port using the go-github library.
type Client struct {
	gh       *gh.Client
	allPages bool // Follow Link headers when listing comments; off by default.
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. loggingTransport (debug log of every request that reaches the network)
//  2. httpcache (ETag-based conditional request caching)
//  3. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  4. go-github (GitHub REST API client with token auth)
//
// A non-empty apiURL points the client at a GitHub Enterprise Server API root.
func NewClient(token, apiURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = &loggingTransport{next: http.DefaultTransport}
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URL %q: %w", apiURL, err)
		}
	}

	return &Client{gh: client}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// WithAllPages returns a copy of the client that follows pagination when
// listing comments. Without it only the first page is fetched, so a marked
// comment beyond the first 100 is not seen.
func (c *Client) WithAllPages(all bool) *Client {
	c2 := *c
	c2.allPages = all
	return &c2
}

// ListIssueComments retrieves the comments on an issue or pull request in the
// order GitHub returns them (creation order).
func (c *Client) ListIssueComments(ctx context.Context, issue model.IssueRef) ([]model.Comment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: commentsPerPage},
	}
	allComments := []model.Comment{}

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, issue.Owner, issue.Repo, issue.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments on %s (page %d): %w", issue, opts.Page, err)
		}

		logRateLimit(resp, issue.String()+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			allComments = append(allComments, mapIssueComment(comment))
		}

		if !c.allPages || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// mapIssueComment converts a go-github IssueComment to a domain model Comment.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapIssueComment(c *gh.IssueComment) model.Comment {
	return model.Comment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		URL:       c.GetHTMLURL(),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
