package response

import (
	"time"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/session"
)

// LoginResponse represents a successful passcode login
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	State       session.State `json:"state"`
}

// FormResponse represents a fresh receipt form
type FormResponse struct {
	Record          entity.TuitionRecord `json:"record"`
	Title           string               `json:"title"`
	HasDraft        bool                 `json:"has_draft"`
	ScheduleOptions []string             `json:"schedule_options,omitempty"`
}

// ReceiptResponse carries a computed receipt, its record and the next view
type ReceiptResponse struct {
	Record  *entity.TuitionRecord `json:"record,omitempty"`
	Receipt *entity.Receipt       `json:"receipt"`
	State   *session.State        `json:"state,omitempty"`
}

// PrintResponse carries a receipt and, when printing failed, a one-time warning
type PrintResponse struct {
	Receipt *entity.Receipt `json:"receipt"`
	Warning string          `json:"warning,omitempty"`
}
