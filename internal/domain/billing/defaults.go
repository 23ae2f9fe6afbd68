package billing

import (
	"fmt"
	"time"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
)

// DefaultNote is printed in the notes block of every new receipt.
const DefaultNote = "- Tồn tháng trước sẽ tính vào tháng sau.\n" +
	"- Học sinh bán trú nghỉ ngày nào sẽ trừ tiền ăn ngày đó. Giờ can thiệp cá nhân sẽ được dạy bù.\n" +
	"- Học sinh can thiệp cá nhân nghỉ buổi nào sẽ bố trí học bù. Nếu không bố trí dạy bù được, thì sẽ trừ vào học phí tháng tiếp theo."

// DefaultItems returns a fresh copy of the line items a new form starts with.
func DefaultItems(t enum.BillingType) []entity.TuitionLineItem {
	if t == enum.BillingTypeDaycare {
		return []entity.TuitionLineItem{
			{ID: "d1", Content: "Phí lớp nhóm", Unit: "Tháng", Quantity: 1, Rate: 1600000, Discount: 10},
			{ID: "d2", Content: "Phí can thiệp cá nhân 1", Unit: "Giờ", Quantity: 0, Rate: 110000, Discount: 10},
			{ID: "d3", Content: "Phí can thiệp cá nhân 2", Unit: "Giờ", Quantity: 0, Rate: 100000, Discount: 10},
			{ID: "d4", Content: "Tiền ăn", Unit: "Ngày", Quantity: 0, Rate: 30000, Discount: 0},
			{ID: "d5", Content: "Phụ phí", Unit: "Tháng", Quantity: 1, Rate: 30000, Discount: 0},
			{ID: "d6", Content: "Phí sổ liên lạc điện tử", Unit: "Tháng", Quantity: 0, Rate: 20000, Discount: 0},
			{ID: "d7", Content: "Hoàn phí can thiệp cá nhân 1", Unit: "Giờ", Quantity: 0, Rate: 110000, Discount: 10},
			{ID: "d8", Content: "Hoàn phí can thiệp cá nhân 2", Unit: "Giờ", Quantity: 0, Rate: 100000, Discount: 10},
			{ID: "d9", Content: "Hoàn tiền ăn", Unit: "Ngày", Quantity: 0, Rate: 30000, Discount: 0},
		}
	}
	return []entity.TuitionLineItem{
		{ID: "i1", Content: "Phí can thiệp cá nhân 1", Unit: "Giờ", Quantity: 0, Rate: 135000, Discount: 10},
		{ID: "i2", Content: "Phí can thiệp cá nhân 2", Unit: "Giờ", Quantity: 0, Rate: 130000, Discount: 10},
		{ID: "i3", Content: "Phí sổ liên lạc điện tử", Unit: "Tháng", Quantity: 0, Rate: 20000, Discount: 0},
		{ID: "i4", Content: "Hoàn phí can thiệp cá nhân 1", Unit: "Tháng", Quantity: 0, Rate: 135000, Discount: 10},
		{ID: "i5", Content: "Hoàn phí can thiệp cá nhân 2", Unit: "Giờ", Quantity: 0, Rate: 130000, Discount: 10},
	}
}

// MonthLabel formats the receipt month, e.g. "Tháng 10/2026".
func MonthLabel(now time.Time) string {
	return fmt.Sprintf("Tháng %d/%d", int(now.Month()), now.Year())
}

// DateLabel formats a creation date the way vi-VN locales do, e.g. "5/1/2026".
func DateLabel(now time.Time) string {
	return now.Format("2/1/2006")
}

// NewRecord builds the in-memory record a new form opens with. It is not
// persisted and carries no identifier.
func NewRecord(t enum.BillingType, now time.Time) entity.TuitionRecord {
	record := entity.TuitionRecord{
		Type:        t,
		MonthYear:   MonthLabel(now),
		CreatedDate: DateLabel(now),
		Note:        DefaultNote,
		Items:       DefaultItems(t),
	}

	switch t {
	case enum.BillingTypeDaycare:
		record.ClassName = "Bán trú"
		record.StudyFormat = "Bán trú tại trường"
		record.StudyHours = "07h00 - 16h00"
	default:
		record.ClassName = "Can thiệp cá nhân"
		record.StudyFormat = "Can thiệp cá nhân theo giờ"
	}

	return record
}

// NewBlankItem returns an empty line item for the "add row" action.
func NewBlankItem(id string) entity.TuitionLineItem {
	return entity.TuitionLineItem{ID: id}
}
