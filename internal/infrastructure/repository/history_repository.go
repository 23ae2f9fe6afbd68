package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/repository"
	"github.com/anviet/tuition-api/pkg/utils"
)

type historyRepository struct {
	mu    sync.Mutex
	store repository.KeyValueStore
	ids   utils.IDGenerator
	log   *zap.Logger
}

// NewHistoryRepository creates a history repository over the keyed store.
// Every mutation reads, changes and rewrites the whole collection.
func NewHistoryRepository(store repository.KeyValueStore, ids utils.IDGenerator, log *zap.Logger) repository.HistoryRepository {
	return &historyRepository{store: store, ids: ids, log: log}
}

// List returns every record, newest first
func (r *historyRepository) List(ctx context.Context) ([]entity.TuitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Get retrieves a record by ID
func (r *historyRepository) Get(ctx context.Context, id string) (*entity.TuitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

// Upsert stores a finalized record
func (r *historyRepository) Upsert(ctx context.Context, record entity.TuitionRecord) (*entity.TuitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	saved := record.Clone()
	if saved.ID == "" {
		saved.ID = r.nextID(records)
	}

	replaced := false
	for i := range records {
		if records[i].ID == saved.ID {
			records[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		records = append([]entity.TuitionRecord{saved}, records...)
	}

	if err := r.save(ctx, records); err != nil {
		return nil, err
	}

	r.log.Debug("history record saved",
		zap.String("id", saved.ID),
		zap.Bool("replaced", replaced),
		zap.Int("count", len(records)),
	)
	return &saved, nil
}

// Remove deletes a record by ID. Nothing is written when no record matches.
func (r *historyRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	removed := false
	kept := make([]entity.TuitionRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}

	return r.save(ctx, kept)
}

func (r *historyRepository) nextID(records []entity.TuitionRecord) string {
	taken := make(map[string]struct{}, len(records))
	for _, rec := range records {
		taken[rec.ID] = struct{}{}
	}
	for {
		id := r.ids.NewID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func (r *historyRepository) load(ctx context.Context) ([]entity.TuitionRecord, error) {
	raw, ok, err := r.store.Get(ctx, repository.HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok || raw == "" {
		return []entity.TuitionRecord{}, nil
	}

	var records []entity.TuitionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.log.Warn("history is unreadable, treating as empty", zap.Error(err))
		return []entity.TuitionRecord{}, nil
	}
	if records == nil {
		records = []entity.TuitionRecord{}
	}
	return records, nil
}

func (r *historyRepository) save(ctx context.Context, records []entity.TuitionRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := r.store.Set(ctx, repository.HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
