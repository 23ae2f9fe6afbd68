package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/domain/repository"
)

type draftRepository struct {
	store repository.KeyValueStore
	log   *zap.Logger
}

// NewDraftRepository creates a draft repository with one slot per billing type
func NewDraftRepository(store repository.KeyValueStore, log *zap.Logger) repository.DraftRepository {
	return &draftRepository{store: store, log: log}
}

func draftKey(t enum.BillingType) string {
	return repository.DraftKeyPrefix + string(t)
}

func (r *draftRepository) Save(ctx context.Context, t enum.BillingType, record entity.TuitionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := r.store.Set(ctx, draftKey(t), string(data)); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *draftRepository) Load(ctx context.Context, t enum.BillingType) (*entity.TuitionRecord, error) {
	raw, ok, err := r.store.Get(ctx, draftKey(t))
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "null" {
		return nil, nil
	}

	var record entity.TuitionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		r.log.Warn("draft is unreadable, ignoring",
			zap.String("type", string(t)),
			zap.Error(err),
		)
		return nil, nil
	}
	return &record, nil
}

func (r *draftRepository) Clear(ctx context.Context, t enum.BillingType) error {
	if err := r.store.Delete(ctx, draftKey(t)); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Exists reports whether a readable draft is stored for t
func (r *draftRepository) Exists(ctx context.Context, t enum.BillingType) (bool, error) {
	record, err := r.Load(ctx, t)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}
