package enum

import "fmt"

// BillingType selects the tuition category of a receipt: its default line items
// and which fields are mandatory.
type BillingType string

const (
	BillingTypeDaycare    BillingType = "daycare"
	BillingTypeIndividual BillingType = "individual"
)

// AllBillingTypes returns the billing types in dashboard order.
func AllBillingTypes() []BillingType {
	return []BillingType{BillingTypeDaycare, BillingTypeIndividual}
}

func (t BillingType) String() string {
	return string(t)
}

// IsValid reports whether t is a known billing type.
func (t BillingType) IsValid() bool {
	switch t {
	case BillingTypeDaycare, BillingTypeIndividual:
		return true
	}
	return false
}

// Label is the short badge text shown in the history list.
func (t BillingType) Label() string {
	switch t {
	case BillingTypeDaycare:
		return "Bán trú"
	case BillingTypeIndividual:
		return "Cá nhân"
	}
	return string(t)
}

// Title is the heading shown above the form.
func (t BillingType) Title() string {
	switch t {
	case BillingTypeDaycare:
		return "Học Phí Bán Trú"
	case BillingTypeIndividual:
		return "Học Phí Cá Nhân"
	}
	return string(t)
}

// ParseBillingType converts a raw string into a BillingType.
func ParseBillingType(s string) (BillingType, error) {
	t := BillingType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown billing type %q", s)
	}
	return t, nil
}
