package handlers

import (
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type GroupRequestHandler struct {
	requests *services.GroupRequestService
}

func NewGroupRequestHandler(requests *services.GroupRequestService) *GroupRequestHandler {
	return &GroupRequestHandler{requests: requests}
}

// List answers the caller's pending requests as a master, across all their
// groups.
func (h *GroupRequestHandler) List(c *gin.Context) {
	masterID := c.GetInt64("user_id")

	requests, err := h.requests.ListPendingForMaster(c.Request.Context(), masterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"groupRequests": requests})
}

func (h *GroupRequestHandler) Create(c *gin.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	request, err := h.requests.Create(c.Request.Context(), groupID, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"groupRequest": request})
}

func (h *GroupRequestHandler) Accept(c *gin.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId", "group request")
	if !ok {
		return
	}
	actorID := c.GetInt64("user_id")

	request, err := h.requests.Accept(c.Request.Context(), groupID, requestID, actorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"groupRequest": request})
}

func (h *GroupRequestHandler) Reject(c *gin.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId", "group request")
	if !ok {
		return
	}
	actorID := c.GetInt64("user_id")

	if err := h.requests.Reject(c.Request.Context(), groupID, requestID, actorID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
