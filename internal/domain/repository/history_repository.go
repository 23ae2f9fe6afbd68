package repository

import (
	"context"

	"github.com/anviet/tuition-api/internal/domain/entity"
)

// HistoryRepository defines the interface for finalized receipt storage.
// Records are kept newest-first with at most one record per identifier.
type HistoryRepository interface {
	// List returns every record, newest first. Unparseable data reads as empty.
	List(ctx context.Context) ([]entity.TuitionRecord, error)
	// Get returns the record with id, or nil when it does not exist
	Get(ctx context.Context, id string) (*entity.TuitionRecord, error)
	// Upsert assigns an id when missing, then replaces in place or prepends
	Upsert(ctx context.Context, record entity.TuitionRecord) (*entity.TuitionRecord, error)
	// Remove deletes the record with id; a missing id is a no-op
	Remove(ctx context.Context, id string) error
}
