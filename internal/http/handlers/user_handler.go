package handlers

import (
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

type UpdateUserRequest struct {
	Email    string  `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"omitempty,min=4"`
	Avatar   *string `json:"avatar"`
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, services.UserUpdate{
		Email:    req.Email,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, user)
}
