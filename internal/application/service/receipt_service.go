package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/repository"
	"github.com/anviet/tuition-api/pkg/apperror"
	"github.com/anviet/tuition-api/pkg/printer"
	"github.com/anviet/tuition-api/pkg/utils"
)

// ReceiptService composes receipts from records and sends them to the thermal printer.
type ReceiptService struct {
	historyRepo repository.HistoryRepository
	printer     printer.Printer
	printerType string
	charWidth   int
	layout      billing.ReceiptLayout
	log         *zap.Logger
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	historyRepo repository.HistoryRepository,
	p printer.Printer,
	printerType string,
	charWidth int,
	layout billing.ReceiptLayout,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		historyRepo: historyRepo,
		printer:     p,
		printerType: printerType,
		charWidth:   charWidth,
		layout:      layout,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// Build computes the printable receipt for a record.
func (s *ReceiptService) Build(record entity.TuitionRecord) *entity.Receipt {
	return billing.BuildReceipt(record, s.layout)
}

// GetReceipt builds the receipt of a finalized record.
func (s *ReceiptService) GetReceipt(ctx context.Context, id string) (*entity.Receipt, error) {
	record, err := s.historyRepo.Get(ctx, id)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load receipt", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return s.Build(*record), nil
}

// Print sends a finalized receipt to the printer. When printing fails the
// receipt is still returned along with the error; nothing stored changes.
func (s *ReceiptService) Print(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, s.FormatReceipt(receipt)); err != nil {
		s.log.Warn("printing failed", zap.String("id", id), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	s.log.Info("receipt printed", zap.String("id", id))
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes. Text is folded to
// ASCII since thermal printers rarely carry a Vietnamese code page.
func (s *ReceiptService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.charWidth)
	a := utils.ASCIIFold

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Wrapped(a(r.Header.CenterName)).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Wrapped(a(r.Header.Address))
	}
	if r.Header.Phone != "" {
		doc.Text(a("ĐT: " + r.Header.Phone))
	}

	doc.LineFeed().
		SetBold(true).
		SetFontSize(printer.FontTall).
		Wrapped(a(r.Title)).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text(a("Ngày lập: " + r.CreatedDate))

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue(a("Học sinh:"), a(r.StudentName)).
		KeyValue(a("Lớp:"), a(r.ClassName))
	if r.MaskedPhone != "" {
		doc.KeyValue(a("SĐT:"), r.MaskedPhone)
	}

	doc.Separator('-')

	// Items, skipping rows that contribute nothing
	for _, row := range r.Rows {
		if row.Amount == 0 {
			continue
		}
		doc.ItemLine(row.Index, a(row.Description), utils.FormatCurrency(row.Amount))
		detail := fmt.Sprintf("   %s %s x %s", utils.FormatCurrency(row.Quantity), a(row.Unit), utils.FormatCurrency(row.Rate))
		if pct := utils.FormatPercent(row.Discount); pct != "" {
			detail += " -" + pct
		}
		doc.Text(detail)
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue(a("TỔNG CỘNG:"), utils.FormatCurrency(r.GrandTotal)).
		SetBold(false).
		Separator('-')

	if r.StudySchedule != "" {
		doc.Wrapped(a("Lịch học: " + r.StudySchedule))
	}
	if r.StudyHours != "" {
		doc.Wrapped(a("Giờ học: " + r.StudyHours))
	}
	if r.Note != "" {
		doc.Wrapped(a(r.Note))
	}

	// Payment
	doc.Separator('-').
		Wrapped(a(r.Payment.BankName)).
		KeyValue("STK:", r.Payment.AccountNumber).
		Wrapped(a(r.Payment.AccountHolder))

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(a("Người lập phiếu")).
		SetBold(true).
		Text(a(r.Issuer)).
		SetBold(false)
	if r.IssuerDepartment != "" {
		doc.Text(a(r.IssuerDepartment))
	}
	if r.Header.Slogan != "" {
		doc.LineFeed().Wrapped(a(r.Header.Slogan))
	}
	doc.SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
