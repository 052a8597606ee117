// Package actions resolves the issue a run reports to from the GitHub Actions
// job environment.
package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// Environment variables set by the Actions runner.
const (
	EnvRepository = "GITHUB_REPOSITORY"
	EnvEventPath  = "GITHUB_EVENT_PATH"
	EnvRef        = "GITHUB_REF"
)

// ErrNoIssueNumber is returned when neither the event payload nor GITHUB_REF
// identifies an issue or pull request.
var ErrNoIssueNumber = errors.New("no issue or pull request number in the workflow event")

// Overrides take precedence over the environment. Zero values are ignored.
type Overrides struct {
	Repo   string // "owner/repo"
	Number int
}

// eventPayload is the subset of a webhook payload that carries an issue number.
type eventPayload struct {
	Issue *struct {
		Number int `json:"number"`
	} `json:"issue"`
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Number int `json:"number"`
}

// LoadIssueRef builds the IssueRef for this run. getenv is usually os.Getenv.
//
// The number comes from the event payload at GITHUB_EVENT_PATH (issue, then
// pull_request, then the top-level number), falling back to a
// refs/pull/<n>/merge GITHUB_REF.
func LoadIssueRef(getenv func(string) string, overrides Overrides) (model.IssueRef, error) {
	repoFullName := overrides.Repo
	if repoFullName == "" {
		repoFullName = getenv(EnvRepository)
	}
	if repoFullName == "" {
		return model.IssueRef{}, fmt.Errorf("%s is not set and no repository was given", EnvRepository)
	}

	owner, repo, err := model.ParseRepo(repoFullName)
	if err != nil {
		return model.IssueRef{}, err
	}

	number := overrides.Number
	if number == 0 {
		number, err = issueNumberFromEnv(getenv)
		if err != nil {
			return model.IssueRef{}, err
		}
	}

	return model.IssueRef{Owner: owner, Repo: repo, Number: number}, nil
}

func issueNumberFromEnv(getenv func(string) string) (int, error) {
	if path := getenv(EnvEventPath); path != "" {
		number, err := issueNumberFromEvent(path)
		if err != nil {
			return 0, err
		}
		if number > 0 {
			return number, nil
		}
	}

	if number := pullNumberFromRef(getenv(EnvRef)); number > 0 {
		return number, nil
	}

	return 0, fmt.Errorf("%w (checked %s and %s)", ErrNoIssueNumber, EnvEventPath, EnvRef)
}

// issueNumberFromEvent reads the webhook payload the runner wrote for this job.
func issueNumberFromEvent(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading event payload %s: %w", path, err)
	}

	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decoding event payload %s: %w", path, err)
	}

	switch {
	case payload.Issue != nil && payload.Issue.Number > 0:
		return payload.Issue.Number, nil
	case payload.PullRequest != nil && payload.PullRequest.Number > 0:
		return payload.PullRequest.Number, nil
	default:
		return payload.Number, nil
	}
}

// pullNumberFromRef extracts N from "refs/pull/N/merge" (or ".../head").
func pullNumberFromRef(ref string) int {
	if !strings.HasPrefix(ref, "refs/pull/") {
		return 0
	}
	parts := strings.Split(ref, "/")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
