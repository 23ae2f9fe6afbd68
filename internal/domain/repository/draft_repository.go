package repository

import (
	"context"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
)

// DraftRepository defines the single-slot draft storage per billing type.
type DraftRepository interface {
	Save(ctx context.Context, billingType enum.BillingType, record entity.TuitionRecord) error
	// Load returns nil when the slot is empty or holds unparseable data
	Load(ctx context.Context, billingType enum.BillingType) (*entity.TuitionRecord, error)
	Clear(ctx context.Context, billingType enum.BillingType) error
	Exists(ctx context.Context, billingType enum.BillingType) (bool, error)
}
