package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/domain/session"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/request"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
)

// AuthHandler handles the passcode gate
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles passcode login
// @Summary Login
// @Description Check the center passcode and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Passcode"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", response.LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
		State:       output.State,
	})
}

// Logout ends the session on the client. Tokens are stateless, so the
// server only reports the state to return to.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	state := session.Transition(authenticatedState(), session.Event{Kind: session.EventLogout})
	response.OK(c, "Logged out", gin.H{"state": state})
}
