package billing

import (
	"strings"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/pkg/utils"
)

// ReceiptLayout carries the center-wide parts of a receipt.
type ReceiptLayout struct {
	Header           entity.ReceiptHeader
	Payment          entity.PaymentInfo
	IssuerDepartment string
}

// BuildReceipt resolves every signed amount and the grand total of a record.
func BuildReceipt(record entity.TuitionRecord, layout ReceiptLayout) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:           layout.Header,
		RecordID:         record.ID,
		Type:             record.Type,
		Title:            "PHIẾU HỌC PHÍ " + strings.ToUpper(record.MonthYear),
		StudentName:      record.StudentName,
		ClassName:        record.ClassName,
		MaskedPhone:      utils.MaskPhone(record.PhoneNumber),
		MonthYear:        record.MonthYear,
		CreatedDate:      record.CreatedDate,
		Rows:             make([]entity.ReceiptRow, 0, len(record.Items)),
		GrandTotal:       GrandTotal(record.Items),
		StudyFormat:      record.StudyFormat,
		StudySchedule:    record.StudySchedule,
		StudyHours:       record.StudyHours,
		Note:             record.Note,
		Payment:          layout.Payment,
		Issuer:           record.Issuer,
		IssuerDepartment: layout.IssuerDepartment,
	}

	for i, item := range record.Items {
		receipt.Rows = append(receipt.Rows, entity.ReceiptRow{
			Index:       i + 1,
			Description: item.Content,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Discount:    item.Discount,
			Amount:      SignedAmount(item),
			Refund:      IsRefundLine(item.Content),
		})
	}

	return receipt
}
