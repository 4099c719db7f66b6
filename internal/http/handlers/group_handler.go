package handlers

import (
	"net/http"
	"strconv"

	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groups *services.GroupService
}

type GroupPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Chronic     string `json:"chronic" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Schedule    string `json:"schedule" binding:"required"`
	Master      int64  `json:"master" binding:"required"`
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) List(c *gin.Context) {
	filters := repo.GroupFilters{Text: c.Query("text")}
	if userStr := c.Query("user"); userStr != "" {
		userID, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil {
			utils.RespondValidationError(c, http.StatusUnprocessableEntity, "user must be numeric")
			return
		}
		filters.User = &userID
	}

	groups, err := h.groups.List(c.Request.Context(), filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"groups": groups})
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req GroupPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	group, err := h.groups.Create(c.Request.Context(), &models.Group{
		Name:        req.Name,
		Description: req.Description,
		Chronic:     req.Chronic,
		Location:    req.Location,
		Schedule:    req.Schedule,
		Master:      req.Master,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"group": group})
}

func (h *GroupHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}

	var req GroupPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	group, err := h.groups.Update(c.Request.Context(), &models.Group{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Chronic:     req.Chronic,
		Location:    req.Location,
		Schedule:    req.Schedule,
		Master:      req.Master,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"group": group})
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}

	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{})
}

func (h *GroupHandler) RemovePlayer(c *gin.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	playerID, ok := pathID(c, "playerId", "player")
	if !ok {
		return
	}

	if err := h.groups.RemovePlayer(c.Request.Context(), groupID, playerID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{})
}
