package handlers

import (
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/http/middleware"
	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	auth *services.AuthService
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewSessionHandler(auth *services.AuthService) *SessionHandler {
	return &SessionHandler{auth: auth}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Missing or malformed credentials are a plain 400 here.
		utils.RespondValidationError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, resp)
}

func (h *SessionHandler) Destroy(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{})
}
