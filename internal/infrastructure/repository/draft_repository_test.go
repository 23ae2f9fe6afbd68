package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/infrastructure/storage"
)

func TestDraft_RoundTripAndClear(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewDraftRepository(store, zap.NewNop())
	ctx := context.Background()

	record := entity.TuitionRecord{
		Type:        enum.BillingTypeDaycare,
		StudentName: "An",
		Items:       []entity.TuitionLineItem{{ID: "d1", Content: "Phí lớp nhóm", Quantity: 1, Rate: 1600000, Discount: 10}},
	}
	require.NoError(t, repo.Save(ctx, enum.BillingTypeDaycare, record))

	ok, err := repo.Exists(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := repo.Load(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, record, *loaded)

	raw, found, _ := store.Get(ctx, "tuition_draft_daycare")
	assert.True(t, found)
	assert.Contains(t, raw, `"studentName":"An"`)

	require.NoError(t, repo.Clear(ctx, enum.BillingTypeDaycare))
	loaded, err = repo.Load(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraft_SlotsAreIndependent(t *testing.T) {
	repo := NewDraftRepository(storage.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, enum.BillingTypeIndividual, entity.TuitionRecord{StudentName: "Bình"}))

	ok, _ := repo.Exists(ctx, enum.BillingTypeDaycare)
	assert.False(t, ok)

	require.NoError(t, repo.Clear(ctx, enum.BillingTypeDaycare))
	ok, _ = repo.Exists(ctx, enum.BillingTypeIndividual)
	assert.True(t, ok)
}

func TestDraft_CorruptedSlotReadsAsAbsent(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewDraftRepository(store, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tuition_draft_individual", "oops"))

	loaded, err := repo.Load(ctx, enum.BillingTypeIndividual)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraft_NullSlotReadsAsAbsent(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewDraftRepository(store, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tuition_draft_daycare", "null"))

	loaded, err := repo.Load(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	ok, err := repo.Exists(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.False(t, ok)
}
