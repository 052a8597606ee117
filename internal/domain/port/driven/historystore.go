package driven

import (
	"context"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// HistoryStore defines the driven port for the local run history.
type HistoryStore interface {
	// Record appends an entry. ID and RecordedAt are assigned by the store
	// when zero.
	Record(ctx context.Context, entry model.HistoryEntry) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.HistoryEntry, error)
}
