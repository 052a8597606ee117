// Package filesystem implements the ReportReader port on the local filesystem.
package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
	"github.com/wellcomecollection/scala-libs/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReportReader = (*ReportFile)(nil)

// ReportFile reads a report from a fixed path.
type ReportFile struct {
	path string
}

// NewReportFile creates a ReportFile for the given path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

// ReadReport reads the whole file. The contents are returned byte for byte;
// no trimming or newline normalisation is applied.
func (f *ReportFile) ReadReport(ctx context.Context) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w: %w", f.path, model.ErrReportUnreadable, err)
	}

	slog.Debug("report read", "path", f.path, "bytes", len(data))

	return &model.Report{Path: f.path, Body: string(data)}, nil
}
