// Package application contains use-case orchestration services.
package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
	"github.com/wellcomecollection/scala-libs/internal/domain/port/driven"
)

// UpsertService keeps exactly one eviction report comment on an issue: it
// updates the first comment carrying the marker, or creates one when none does.
type UpsertService struct {
	tracker driven.CommentTracker
	reader  driven.ReportReader
	history driven.HistoryStore
	marker  string
}

// NewUpsertService creates a new UpsertService. history may be nil to disable
// the local run history. An empty marker selects model.DefaultMarker.
func NewUpsertService(
	tracker driven.CommentTracker,
	reader driven.ReportReader,
	history driven.HistoryStore,
	marker string,
) *UpsertService {
	if marker == "" {
		marker = model.DefaultMarker
	}
	return &UpsertService{
		tracker: tracker,
		reader:  reader,
		history: history,
		marker:  marker,
	}
}

// UpsertReport posts the report to the issue, replacing the body of the first
// marked comment if there is one. Both the update and the create call complete
// before UpsertReport returns. Errors from any step are returned unchanged in
// meaning and nothing is retried.
func (s *UpsertService) UpsertReport(ctx context.Context, issue model.IssueRef) (*model.UpsertOutcome, error) {
	report, existing, err := s.locate(ctx, issue)
	if err != nil {
		return nil, err
	}

	var (
		comment *model.Comment
		action  model.UpsertAction
	)
	if existing != nil {
		action = model.UpsertActionUpdated
		comment, err = s.tracker.UpdateIssueComment(ctx, issue, existing.ID, report.Body)
	} else {
		action = model.UpsertActionCreated
		comment, err = s.tracker.CreateIssueComment(ctx, issue, report.Body)
	}
	if err != nil {
		return nil, err
	}

	outcome := &model.UpsertOutcome{Action: action}
	if comment != nil {
		outcome.CommentID = comment.ID
		outcome.URL = comment.URL
	}
	if outcome.CommentID == 0 && existing != nil {
		outcome.CommentID = existing.ID
	}

	slog.Info("eviction report posted",
		"issue", issue.String(),
		"action", outcome.Action,
		"comment_id", outcome.CommentID,
		"url", outcome.URL,
	)

	s.record(ctx, issue, report, outcome)

	return outcome, nil
}

// Plan reads the report and lists comments like UpsertReport, but performs no
// mutation. The returned outcome says what UpsertReport would do.
func (s *UpsertService) Plan(ctx context.Context, issue model.IssueRef) (*model.UpsertOutcome, error) {
	_, existing, err := s.locate(ctx, issue)
	if err != nil {
		return nil, err
	}

	outcome := &model.UpsertOutcome{Action: model.UpsertActionCreated, DryRun: true}
	if existing != nil {
		outcome.Action = model.UpsertActionUpdated
		outcome.CommentID = existing.ID
		outcome.URL = existing.URL
	}
	return outcome, nil
}

// locate reads the report and finds the comment it should replace, if any.
// The report is read first so that an unreadable file never reaches the tracker.
func (s *UpsertService) locate(ctx context.Context, issue model.IssueRef) (*model.Report, *model.Comment, error) {
	report, err := s.reader.ReadReport(ctx)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.tracker.ListIssueComments(ctx, issue)
	if err != nil {
		return nil, nil, err
	}

	existing := FindMarked(comments, s.marker)

	slog.Debug("scanned issue comments",
		"issue", issue.String(),
		"comments", len(comments),
		"matched", existing != nil,
	)

	return report, existing, nil
}

// FindMarked returns the first comment, in list order, whose body contains
// marker. Later matches are ignored. Returns nil when nothing matches.
func FindMarked(comments []model.Comment, marker string) *model.Comment {
	for i := range comments {
		if strings.Contains(comments[i].Body, marker) {
			return &comments[i]
		}
	}
	return nil
}

// record appends the outcome to the run history. The tracker has already been
// mutated at this point, so a history failure is logged rather than returned.
func (s *UpsertService) record(ctx context.Context, issue model.IssueRef, report *model.Report, outcome *model.UpsertOutcome) {
	if s.history == nil {
		return
	}

	sum := sha256.Sum256([]byte(report.Body))
	entry := model.HistoryEntry{
		RepoFullName: issue.FullName(),
		IssueNumber:  issue.Number,
		CommentID:    outcome.CommentID,
		Action:       outcome.Action,
		BodySHA256:   hex.EncodeToString(sum[:]),
		BodyBytes:    len(report.Body),
	}

	if err := s.history.Record(ctx, entry); err != nil {
		slog.Warn("failed to record run history",
			"issue", issue.String(),
			"error", fmt.Errorf("recording %s of comment %d: %w", outcome.Action, outcome.CommentID, err),
		)
	}
}
