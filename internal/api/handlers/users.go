package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avdwerf/userbase/internal/repository"
	"github.com/avdwerf/userbase/internal/services"
	"github.com/avdwerf/userbase/internal/utils"
)

// UserResponse represents the user data returned by the API.
// The password hash never leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *repository.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the payload for a partial user update.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// CreateUser creates a new user account.
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, toUserResponse(user))
}

// ListUsers returns a paginated list of users.
func (h *Handlers) ListUsers(c *gin.Context) {
	limit, offset := utils.GetPagination(c)

	users, total, err := h.userSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	utils.PaginatedResponse(c, out, total, limit, offset)
}

// GetUser returns a single user by id.
//
// The id is treated as opaque: an id that matches no row is a not
// found, regardless of its shape.
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, toUserResponse(user))
}

// UpdateUser applies a partial update to an existing user.
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, toUserResponse(user))
}

// DeleteUser permanently deletes a user account.
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContent(c)
}
