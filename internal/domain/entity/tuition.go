package entity

import "github.com/anviet/tuition-api/internal/domain/enum"

// TuitionLineItem is one row of a receipt. JSON names match the records the
// browser client has already stored, so they must not change.
type TuitionLineItem struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Discount float64 `json:"discount"` // percentage
}

// TuitionRecord is a receipt, either in progress (draft) or finalized (history).
// ID is assigned the first time the record is finalized and is stable afterwards.
type TuitionRecord struct {
	ID            string            `json:"id,omitempty"`
	Type          enum.BillingType  `json:"type"`
	StudentName   string            `json:"studentName"`
	ClassName     string            `json:"className"`
	PhoneNumber   string            `json:"phoneNumber"`
	MonthYear     string            `json:"monthYear"`
	CreatedDate   string            `json:"createdDate"`
	Items         []TuitionLineItem `json:"items"`
	StudyFormat   string            `json:"studyFormat"`
	StudySchedule string            `json:"studySchedule"`
	StudyHours    string            `json:"studyHours"`
	Note          string            `json:"note"`
	Issuer        string            `json:"issuer"`
}

// Clone returns a copy of the record that shares no line item storage with r.
func (r TuitionRecord) Clone() TuitionRecord {
	out := r
	if r.Items != nil {
		out.Items = make([]TuitionLineItem, len(r.Items))
		copy(out.Items, r.Items)
	}
	return out
}
