package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/infrastructure/storage"
	"github.com/anviet/tuition-api/pkg/apperror"
	"github.com/anviet/tuition-api/pkg/pagination"
)

func validDaycare() entity.TuitionRecord {
	return entity.TuitionRecord{
		Type:          enum.BillingTypeDaycare,
		StudentName:   "Nguyễn Văn An",
		ClassName:     "Bán trú",
		PhoneNumber:   "0984538228",
		MonthYear:     "Tháng 3/2026",
		CreatedDate:   "2/3/2026",
		StudySchedule: "Thứ hai đến thứ sáu",
		Issuer:        "Cô Bích",
		Items: []entity.TuitionLineItem{
			{ID: "d1", Content: "Phí lớp nhóm", Unit: "Tháng", Quantity: 1, Rate: 1600000, Discount: 10},
			{ID: "d9", Content: "Hoàn tiền ăn", Unit: "Ngày", Quantity: 5, Rate: 30000, Discount: 0},
		},
	}
}

func TestSubmit_DaycareEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, enum.BillingTypeDaycare, validDaycare()))
	_, _ = f.history.Upsert(ctx, entity.TuitionRecord{Type: enum.BillingTypeIndividual, StudentName: "Bình"})

	out, err := f.tuition.Submit(ctx, validDaycare())
	require.NoError(t, err)
	require.NotNil(t, out.Record)
	assert.NotEmpty(t, out.Record.ID)

	require.Len(t, out.Receipt.Rows, 2)
	assert.Equal(t, 1440000.0, out.Receipt.Rows[0].Amount)
	assert.Equal(t, -150000.0, out.Receipt.Rows[1].Amount)
	assert.Equal(t, 1290000.0, out.Receipt.GrandTotal)

	records, err := f.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, out.Record.ID, records[0].ID)

	exists, err := f.drafts.Exists(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubmit_ValidationLeavesStoresUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := entity.TuitionRecord{Type: enum.BillingTypeIndividual, StudentName: "draft"}
	require.NoError(t, f.drafts.Save(ctx, enum.BillingTypeIndividual, draft))
	historyBefore, _, _ := f.store.Get(ctx, "tuition_history")

	record := billing.NewRecord(enum.BillingTypeIndividual, testNow)
	record.PhoneNumber = "0925717826"

	_, err := f.tuition.Submit(ctx, record)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "studentName", appErr.Errors[0].Field)
	assert.Equal(t, "issuer", appErr.Errors[1].Field)

	historyAfter, _, _ := f.store.Get(ctx, "tuition_history")
	assert.Equal(t, historyBefore, historyAfter)

	loaded, err := f.drafts.Load(ctx, enum.BillingTypeIndividual)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "draft", loaded.StudentName)
}

func TestSubmit_EditReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.tuition.Submit(ctx, validDaycare())
	require.NoError(t, err)

	other := validDaycare()
	other.StudentName = "Lê Minh"
	_, err = f.tuition.Submit(ctx, other)
	require.NoError(t, err)

	edited := *first.Record
	edited.Items[1].Quantity = 2
	out, err := f.tuition.Submit(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, first.Record.ID, out.Record.ID)
	assert.Equal(t, 1380000.0, out.Receipt.GrandTotal)

	records, _ := f.history.List(ctx)
	require.Len(t, records, 2)
	assert.Equal(t, "Lê Minh", records[0].StudentName)
	assert.Equal(t, first.Record.ID, records[1].ID)
}

func TestSubmit_DraftClearFailureIsNotFatal(t *testing.T) {
	f := newFixtureWithStore(t, failingDeleteStore{storage.NewMemoryStore()})
	ctx := context.Background()

	out, err := f.tuition.Submit(ctx, validDaycare())
	require.NoError(t, err)
	assert.NotEmpty(t, out.Record.ID)
}

func TestSubmit_InvalidType(t *testing.T) {
	f := newFixture(t)
	record := validDaycare()
	record.Type = "monthly"

	_, err := f.tuition.Submit(context.Background(), record)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestNewForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.tuition.NewForm(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.Equal(t, "Học Phí Bán Trú", out.Title)
	assert.Equal(t, "Tháng 3/2026", out.Record.MonthYear)
	assert.Equal(t, "2/3/2026", out.Record.CreatedDate)
	assert.False(t, out.HasDraft)
	assert.Equal(t, ScheduleOptions, out.ScheduleOptions)

	require.NoError(t, f.tuition.SaveDraft(ctx, enum.BillingTypeDaycare, out.Record))
	out, err = f.tuition.NewForm(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.True(t, out.HasDraft)

	individual, err := f.tuition.NewForm(ctx, enum.BillingTypeIndividual)
	require.NoError(t, err)
	assert.Empty(t, individual.ScheduleOptions)

	_, err = f.tuition.NewForm(ctx, "weekly")
	assert.Error(t, err)
}

func TestDraftLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tuition.LoadDraft(ctx, enum.BillingTypeIndividual)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	record := billing.NewRecord(enum.BillingTypeIndividual, testNow)
	record.StudentName = "Bình"
	require.NoError(t, f.tuition.SaveDraft(ctx, enum.BillingTypeIndividual, record))

	loaded, err := f.tuition.LoadDraft(ctx, enum.BillingTypeIndividual)
	require.NoError(t, err)
	assert.Equal(t, record, *loaded)

	require.NoError(t, f.tuition.ClearDraft(ctx, enum.BillingTypeIndividual))
	_, err = f.tuition.LoadDraft(ctx, enum.BillingTypeIndividual)
	assert.Error(t, err)
}

func TestSaveDraft_RejectsMismatchedType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	record := billing.NewRecord(enum.BillingTypeDaycare, testNow)
	err := f.tuition.SaveDraft(ctx, enum.BillingTypeIndividual, record)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	for _, bt := range enum.AllBillingTypes() {
		ok, err := f.drafts.Exists(ctx, bt)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestListHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"An", "Bình", "Cường"} {
		r := validDaycare()
		r.StudentName = name
		_, err := f.tuition.Submit(ctx, r)
		require.NoError(t, err)
	}

	res, err := f.tuition.ListHistory(ctx, billing.HistoryFilter{}, pagination.PaginationParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Cường", res.Items[0].StudentName)
	assert.Equal(t, 1290000.0, res.Items[0].GrandTotal)
	assert.Equal(t, "Bán trú", res.Items[0].TypeLabel)
	assert.Equal(t, int64(3), res.Pagination.Total)

	res, err = f.tuition.ListHistory(ctx, billing.HistoryFilter{Search: "bình"}, pagination.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Bình", res.Items[0].StudentName)
}

func TestGetAndDeleteRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.tuition.Submit(ctx, validDaycare())
	require.NoError(t, err)

	got, err := f.tuition.GetRecord(ctx, out.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", got.StudentName)

	require.NoError(t, f.tuition.DeleteRecord(ctx, out.Record.ID))
	require.NoError(t, f.tuition.DeleteRecord(ctx, out.Record.ID))

	_, err = f.tuition.GetRecord(ctx, out.Record.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestPreview(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.tuition.Preview(validDaycare())
	require.NoError(t, err)
	assert.Equal(t, 1290000.0, receipt.GrandTotal)
	assert.Empty(t, receipt.RecordID)

	records, _ := f.history.List(context.Background())
	assert.Empty(t, records)
}
