package handlers

import (
	"net/http"
	"strconv"

	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. A malformed id behaves like a
// missing entity and answers 404.
func pathID(c *gin.Context, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewBadRequest(http.StatusNotFound, entity+" not found"))
		return 0, false
	}
	return id, true
}
