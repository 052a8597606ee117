package model

import (
	"fmt"
	"strconv"
	"strings"
)

// IssueRef identifies the issue or pull request a report is posted to.
// Pull requests share the issue number space, so one type covers both.
type IssueRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the "owner/repo" form of the repository coordinates.
func (r IssueRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// String returns "owner/repo#number", used in logs and error messages.
func (r IssueRef) String() string {
	return r.FullName() + "#" + strconv.Itoa(r.Number)
}

// ParseRepo splits an "owner/repo" string into its two components.
func ParseRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
