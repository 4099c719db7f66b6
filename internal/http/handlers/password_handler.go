package handlers

import (
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type PasswordHandler struct {
	passwords *services.PasswordService
}

type ForgotPasswordRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ResetPasswordURL string `json:"resetPasswordUrl" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

func NewPasswordHandler(passwords *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwords: passwords}
}

func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.passwords.Forgot(c.Request.Context(), req.Email, req.ResetPasswordURL); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PasswordHandler) Reset(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.passwords.Reset(c.Request.Context(), req.Token, req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
