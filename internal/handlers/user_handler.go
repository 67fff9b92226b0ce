package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/datatable"
	"github.com/jasperjas06/live-sub000/internal/middleware"
	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func userTableOptions() datatable.Options[models.UserResponse] {
	return datatable.Options[models.UserResponse]{
		Columns: []datatable.Column[models.UserResponse]{
			{Key: "name", Label: "Name", Sortable: true, Value: func(r models.UserResponse) any { return r.FullName }},
			{Key: "email", Label: "Email", Sortable: true, Value: func(r models.UserResponse) any { return r.Email }},
			{Key: "role", Label: "Role", Sortable: true, Value: func(r models.UserResponse) any { return r.Role }},
			{Key: "active", Label: "Active", Value: func(r models.UserResponse) any { return r.Active }},
		},
		SearchBy: func(r models.UserResponse) any { return r.FullName },
	}
}

// @Summary List Users
// @Tags Users
// @Produce json
// @Param page query int false "Zero-indexed page" default(0)
// @Param search query string false "Name search term"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]models.UserResponse, 0, len(users))
	for i := range users {
		rows = append(rows, users[i].ToResponse())
	}

	page := runTable(rows, userTableOptions(), parseTableQuery(c))
	respondOK(c, tablePayload(page), "")
}

// @Summary Get User
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	user, err := h.userService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, user.ToResponse(), "")
}

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// @Summary Create User
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := BindNestedOrFlat(c, "user", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.FullName == "" || req.Email == "" || len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "full_name, email and a password of at least 8 characters are required")
		return
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Active:   true,
	}

	if err := h.userService.Create(c.Request.Context(), user, req.Password); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrDuplicate) {
			status = http.StatusConflict
		}
		respondError(c, status, err.Error())
		return
	}
	respondCreated(c, user.ToResponse(), "user created")
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// @Summary Update User
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "User"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	user, err := h.userService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	var req UpdateUserRequest
	if err := BindNestedOrFlat(c, "user", &req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.userService.Update(c.Request.Context(), user); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(c, user.ToResponse(), "user updated")
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// @Summary Change Password
// @Description Change the authenticated user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param passwords body ChangePasswordRequest true "Passwords"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Security BearerAuth
// @Router /users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, services.ErrInvalidPassword) {
			status = http.StatusForbidden
		}
		respondError(c, status, err.Error())
		return
	}
	respondOK(c, nil, "password changed")
}

// @Summary Delete User
// @Description Soft delete a user account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if uint(id) == middleware.GetUserID(c) {
		respondError(c, http.StatusUnprocessableEntity, "cannot delete your own account")
		return
	}
	if err := h.userService.SoftDelete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, nil, "user deleted")
}

// @Summary Restore User
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /users/{id}/restore [post]
func (h *UserHandler) Restore(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.userService.Restore(c.Request.Context(), uint(id)); err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, nil, "user restored")
}
