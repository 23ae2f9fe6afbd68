package entity

import "github.com/anviet/tuition-api/internal/domain/enum"

// ReceiptHeader holds the center header printed at the top of a receipt.
type ReceiptHeader struct {
	CenterName string `json:"center_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Slogan     string `json:"slogan,omitempty"`
	LogoURL    string `json:"logo_url,omitempty"`
}

// PaymentInfo is the bank transfer block printed next to the issuer signature.
type PaymentInfo struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	QRImageURL    string `json:"qr_image_url,omitempty"`
}

// ReceiptRow is a line item with its signed amount already resolved.
type ReceiptRow struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Discount    float64 `json:"discount"`
	Amount      float64 `json:"amount"`
	Refund      bool    `json:"refund"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT persisted; it is composed from a TuitionRecord at render time.
type Receipt struct {
	Header           ReceiptHeader    `json:"header"`
	RecordID         string           `json:"record_id,omitempty"`
	Type             enum.BillingType `json:"type"`
	Title            string           `json:"title"`
	StudentName      string           `json:"student_name"`
	ClassName        string           `json:"class_name"`
	MaskedPhone      string           `json:"masked_phone"`
	MonthYear        string           `json:"month_year"`
	CreatedDate      string           `json:"created_date"`
	Rows             []ReceiptRow     `json:"rows"`
	GrandTotal       float64          `json:"grand_total"`
	StudyFormat      string           `json:"study_format,omitempty"`
	StudySchedule    string           `json:"study_schedule,omitempty"`
	StudyHours       string           `json:"study_hours,omitempty"`
	Note             string           `json:"note,omitempty"`
	Payment          PaymentInfo      `json:"payment"`
	Issuer           string           `json:"issuer"`
	IssuerDepartment string           `json:"issuer_department,omitempty"`
}
