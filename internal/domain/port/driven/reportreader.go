package driven

import (
	"context"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// ReportReader loads the report text. Failures wrap model.ErrReportUnreadable.
type ReportReader interface {
	ReadReport(ctx context.Context) (*model.Report, error)
}
