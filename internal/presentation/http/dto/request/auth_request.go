package request

// LoginRequest represents a passcode login request
type LoginRequest struct {
	Code string `json:"code" binding:"required"`
}
