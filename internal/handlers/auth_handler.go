package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"moneynote/internal/envelope"
	apperrors "moneynote/internal/errors"
	"moneynote/internal/middleware"
	"moneynote/internal/models"
	"moneynote/internal/services"
)

// AuthHandler handles authentication and profile requests
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SendCodeRequest represents the send-code request payload
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// VerifyCodeRequest represents the verify-code request payload
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Code  string `json:"code" binding:"required,verification_code"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID     uint    `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// AuthResponse represents the verification response with session token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// authFieldError maps a binding failure on the auth payloads to the specific
// email/code format errors so clients can match on the envelope code.
func authFieldError(err error) *apperrors.AppError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		switch ve[0].Field() {
		case "Email":
			return apperrors.ErrInvalidEmail
		case "Code":
			return apperrors.ErrInvalidCodeFormat
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// SendCode dispatches a one-time login code by email
// @Summary     Request a login code
// @Description Generate a 6-digit one-time code and email it to the address
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SendCodeRequest true "Email address"
// @Success     200 {object} envelope.Envelope "Code dispatched"
// @Router      /auth/send-code [post]
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, authFieldError(err))
		return
	}

	if err := h.authService.RequestCode(req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	// The code itself is never echoed back.
	envelope.OK(c, gin.H{
		"success": true,
		"message": "验证码已发送，请查收邮件",
	})
}

// VerifyCode exchanges an emailed code for a session token
// @Summary     Verify a login code
// @Description Verify the one-time code and establish a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body VerifyCodeRequest true "Email and code"
// @Success     200 {object} envelope.Envelope{data=AuthResponse} "Session established"
// @Router      /auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, authFieldError(err))
		return
	}

	token, user, err := h.authService.VerifyCode(req.Email, req.Code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Logout invalidates the current session token
// @Summary     Log out
// @Description Delete the session token; logging out an already-invalid token succeeds
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} envelope.Envelope "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := getToken(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.Logout(token); err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, gin.H{"success": true})
}

// GetProfile returns the authenticated user's profile
// @Summary     Get user profile
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} envelope.Envelope{data=UserResponse} "User profile"
// @Router      /user/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	envelope.OK(c, toUserResponse(user.(*models.User)))
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}
