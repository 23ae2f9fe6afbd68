package request

import (
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/pkg/utils"
)

// LineItemRequest is one line of the receipt form
type LineItemRequest struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Discount float64 `json:"discount"`
}

// TuitionRecordRequest is the receipt form as the client sends it. Field names
// follow the stored record format. The billing type is checked by the service.
type TuitionRecordRequest struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	StudentName   string            `json:"studentName"`
	ClassName     string            `json:"className"`
	PhoneNumber   string            `json:"phoneNumber"`
	MonthYear     string            `json:"monthYear"`
	CreatedDate   string            `json:"createdDate"`
	Items         []LineItemRequest `json:"items"`
	StudyFormat   string            `json:"studyFormat"`
	StudySchedule string            `json:"studySchedule"`
	StudyHours    string            `json:"studyHours"`
	Note          string            `json:"note"`
	Issuer        string            `json:"issuer"`
}

// ToRecord converts the request to a record. Phone numbers keep digits only.
func (r *TuitionRecordRequest) ToRecord() entity.TuitionRecord {
	items := make([]entity.TuitionLineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.TuitionLineItem{
			ID:       it.ID,
			Content:  it.Content,
			Unit:     it.Unit,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Discount: it.Discount,
		})
	}

	return entity.TuitionRecord{
		ID:            r.ID,
		Type:          enum.BillingType(r.Type),
		StudentName:   r.StudentName,
		ClassName:     r.ClassName,
		PhoneNumber:   utils.DigitsOnly(r.PhoneNumber),
		MonthYear:     r.MonthYear,
		CreatedDate:   r.CreatedDate,
		Items:         items,
		StudyFormat:   r.StudyFormat,
		StudySchedule: r.StudySchedule,
		StudyHours:    r.StudyHours,
		Note:          r.Note,
		Issuer:        r.Issuer,
	}
}

// HistoryQuery represents the history list filters
type HistoryQuery struct {
	Search  string `form:"search"`
	Type    string `form:"type" binding:"omitempty,oneof=daycare individual"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
