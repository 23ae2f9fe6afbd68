package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/domain/repository"
	"github.com/anviet/tuition-api/pkg/apperror"
	"github.com/anviet/tuition-api/pkg/pagination"
)

// ScheduleOptions are the study schedules offered on the daycare form.
var ScheduleOptions = []string{"Thứ hai đến thứ sáu", "Thứ hai đến thứ bảy"}

// TuitionService drives a receipt from form to history
type TuitionService struct {
	historyRepo repository.HistoryRepository
	draftRepo   repository.DraftRepository
	receipts    *ReceiptService
	now         func() time.Time
	log         *zap.Logger
}

// NewTuitionService creates a new tuition service. now supplies the clock
// used for form defaults and should already be in the center's timezone.
func NewTuitionService(
	historyRepo repository.HistoryRepository,
	draftRepo repository.DraftRepository,
	receipts *ReceiptService,
	now func() time.Time,
	log *zap.Logger,
) *TuitionService {
	if now == nil {
		now = time.Now
	}
	return &TuitionService{
		historyRepo: historyRepo,
		draftRepo:   draftRepo,
		receipts:    receipts,
		now:         now,
		log:         log,
	}
}

// FormOutput represents a fresh form for a billing type
type FormOutput struct {
	Record          entity.TuitionRecord
	Title           string
	HasDraft        bool
	ScheduleOptions []string
}

// NewForm returns the defaults a new form opens with. Nothing is persisted.
func (s *TuitionService) NewForm(ctx context.Context, t enum.BillingType) (*FormOutput, error) {
	if !t.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid billing type")
	}

	hasDraft, err := s.draftRepo.Exists(ctx, t)
	if err != nil {
		s.log.Warn("draft lookup failed", zap.String("type", string(t)), zap.Error(err))
		hasDraft = false
	}

	out := &FormOutput{
		Record:   billing.NewRecord(t, s.now()),
		Title:    t.Title(),
		HasDraft: hasDraft,
	}
	if t == enum.BillingTypeDaycare {
		out.ScheduleOptions = ScheduleOptions
	}
	return out, nil
}

// Preview computes the receipt of an unsaved record
func (s *TuitionService) Preview(record entity.TuitionRecord) (*entity.Receipt, error) {
	if !record.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid billing type")
	}
	return s.receipts.Build(record), nil
}

// SubmitOutput represents a finalized record with its receipt
type SubmitOutput struct {
	Record  *entity.TuitionRecord
	Receipt *entity.Receipt
}

// Submit validates and finalizes a record. On validation failure neither the
// history nor the draft slot is touched.
func (s *TuitionService) Submit(ctx context.Context, record entity.TuitionRecord) (*SubmitOutput, error) {
	if !record.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid billing type")
	}
	if errs := billing.Validate(record); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	saved, err := s.historyRepo.Upsert(ctx, record)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to save receipt", err)
	}

	// best-effort once the record is in history
	if err := s.draftRepo.Clear(ctx, saved.Type); err != nil {
		s.log.Warn("draft clear failed after submit", zap.String("type", string(saved.Type)), zap.Error(err))
	}

	s.log.Info("receipt finalized",
		zap.String("id", saved.ID),
		zap.String("type", string(saved.Type)),
	)

	return &SubmitOutput{
		Record:  saved,
		Receipt: s.receipts.Build(*saved),
	}, nil
}

// SaveDraft stores the in-progress form of a billing type
func (s *TuitionService) SaveDraft(ctx context.Context, t enum.BillingType, record entity.TuitionRecord) error {
	if !t.IsValid() {
		return apperror.NewBadRequestError("Invalid billing type")
	}
	if record.Type != "" && record.Type != t {
		return apperror.NewBadRequestError("Draft type does not match the form")
	}
	if err := s.draftRepo.Save(ctx, t, record); err != nil {
		return apperror.NewInternalError("Failed to save draft", err)
	}
	return nil
}

// LoadDraft returns the stored draft of a billing type
func (s *TuitionService) LoadDraft(ctx context.Context, t enum.BillingType) (*entity.TuitionRecord, error) {
	if !t.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid billing type")
	}
	record, err := s.draftRepo.Load(ctx, t)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load draft", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return record, nil
}

// ClearDraft discards the stored draft of a billing type
func (s *TuitionService) ClearDraft(ctx context.Context, t enum.BillingType) error {
	if !t.IsValid() {
		return apperror.NewBadRequestError("Invalid billing type")
	}
	if err := s.draftRepo.Clear(ctx, t); err != nil {
		return apperror.NewInternalError("Failed to clear draft", err)
	}
	return nil
}

// HistorySummary is one row of the history list
type HistorySummary struct {
	ID          string           `json:"id"`
	Type        enum.BillingType `json:"type"`
	TypeLabel   string           `json:"type_label"`
	StudentName string           `json:"student_name"`
	ClassName   string           `json:"class_name"`
	MonthYear   string           `json:"month_year"`
	CreatedDate string           `json:"created_date"`
	Issuer      string           `json:"issuer"`
	GrandTotal  float64          `json:"grand_total"`
}

// Summarize reduces a record to its history list row
func Summarize(record entity.TuitionRecord) HistorySummary {
	return HistorySummary{
		ID:          record.ID,
		Type:        record.Type,
		TypeLabel:   record.Type.Label(),
		StudentName: record.StudentName,
		ClassName:   record.ClassName,
		MonthYear:   record.MonthYear,
		CreatedDate: record.CreatedDate,
		Issuer:      record.Issuer,
		GrandTotal:  billing.GrandTotal(record.Items),
	}
}

// ListHistory returns finalized receipts, newest first
func (s *TuitionService) ListHistory(ctx context.Context, filter billing.HistoryFilter, params pagination.PaginationParams) (*pagination.PaginatedResult[HistorySummary], error) {
	records, err := s.historyRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load history", err)
	}

	matched := billing.FilterHistory(records, filter)
	summaries := make([]HistorySummary, 0, len(matched))
	for _, r := range matched {
		summaries = append(summaries, Summarize(r))
	}

	return pagination.Paginate(summaries, params), nil
}

// GetRecord retrieves a finalized record by ID
func (s *TuitionService) GetRecord(ctx context.Context, id string) (*entity.TuitionRecord, error) {
	record, err := s.historyRepo.Get(ctx, id)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load receipt", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return record, nil
}

// DeleteRecord removes a finalized record. Deleting a missing record succeeds.
func (s *TuitionService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.historyRepo.Remove(ctx, id); err != nil {
		return apperror.NewInternalError("Failed to delete receipt", err)
	}
	s.log.Info("receipt deleted", zap.String("id", id))
	return nil
}
