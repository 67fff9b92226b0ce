package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respondOK(c, result, "login successful")
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Refresh Token
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respondOK(c, result, "token refreshed")
}

// @Summary Logout
// @Description Invalidate the current user's refresh tokens
// @Tags Auth
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, nil, "logged out")
}

// @Summary Current User
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userService.FindByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, user.ToResponse(), "")
}

type RecoveryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Request Password Recovery
// @Description Generate a recovery code for the account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RecoveryRequest true "Account email"
// @Success 200 {object} Envelope
// @Router /auth/recover [post]
func (h *AuthHandler) Recover(c *gin.Context) {
	var req RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// The outcome is identical whether or not the account exists
	h.userService.GenerateRecoveryCode(c.Request.Context(), req.Email)
	respondOK(c, nil, "if the account exists, a recovery code was issued")
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// @Summary Reset Password
// @Description Reset the password using a recovery code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Recovery details"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid or expired recovery code")
		return
	}
	respondOK(c, nil, "password updated")
}
