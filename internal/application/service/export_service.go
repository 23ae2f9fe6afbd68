package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/repository"
	"github.com/anviet/tuition-api/pkg/apperror"
)

const historySheet = "Lịch sử"

var historyColumns = []string{
	"Mã phiếu", "Loại", "Học sinh", "Lớp", "Số điện thoại", "Tháng",
	"Ngày lập", "Lịch học", "Người lập phiếu", "Tổng cộng",
}

// ExportService writes the receipt history to spreadsheets and backup files
type ExportService struct {
	historyRepo repository.HistoryRepository
	store       repository.KeyValueStore
	backupDir   string
	now         func() time.Time
	log         *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(
	historyRepo repository.HistoryRepository,
	store repository.KeyValueStore,
	backupDir string,
	now func() time.Time,
	log *zap.Logger,
) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		historyRepo: historyRepo,
		store:       store,
		backupDir:   backupDir,
		now:         now,
		log:         log,
	}
}

// ExportFileName returns the download name for a history workbook
func (s *ExportService) ExportFileName() string {
	return fmt.Sprintf("lich_su_hoc_phi_%s.xlsx", s.now().Format("20060102_150405"))
}

// WriteHistory writes the filtered history as an xlsx workbook to w
func (s *ExportService) WriteHistory(ctx context.Context, w io.Writer, filter billing.HistoryFilter) error {
	records, err := s.historyRepo.List(ctx)
	if err != nil {
		return apperror.NewInternalError("Failed to load history", err)
	}

	f, err := buildHistoryWorkbook(billing.FilterHistory(records, filter))
	if err != nil {
		return apperror.NewInternalError("Failed to build workbook", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Backup writes the raw history JSON and an xlsx copy into the backup
// directory and returns the written paths.
func (s *ExportService) Backup(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}

	raw, ok, err := s.store.Get(ctx, repository.HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		raw = "[]"
	}

	stamp := s.now().Format("20060102_150405")
	jsonPath := filepath.Join(s.backupDir, "tuition_history_"+stamp+".json")
	if err := os.WriteFile(jsonPath, []byte(raw), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	records, err := s.historyRepo.List(ctx)
	if err != nil {
		return []string{jsonPath}, fmt.Errorf("failed to load history: %w", err)
	}
	f, err := buildHistoryWorkbook(records)
	if err != nil {
		return []string{jsonPath}, err
	}
	defer f.Close()

	xlsxPath := filepath.Join(s.backupDir, "tuition_history_"+stamp+".xlsx")
	if err := f.SaveAs(xlsxPath); err != nil {
		return []string{jsonPath}, fmt.Errorf("failed to write %s: %w", xlsxPath, err)
	}

	s.log.Info("history backed up",
		zap.String("json", jsonPath),
		zap.String("xlsx", xlsxPath),
		zap.Int("records", len(records)),
	)
	return []string{jsonPath, xlsxPath}, nil
}

func buildHistoryWorkbook(records []entity.TuitionRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range historyColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(historySheet, cell, header)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.ID, r.Type.Label(), r.StudentName, r.ClassName, r.PhoneNumber, r.MonthYear,
			r.CreatedDate, r.StudySchedule, r.Issuer, billing.GrandTotal(r.Items),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(historySheet, cell, v)
		}
	}

	return f, nil
}
