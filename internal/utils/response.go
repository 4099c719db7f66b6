package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError is the wire shape of every domain error:
// {"message": ..., "code": ..., "status": ...}.
type AppError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewBadRequest builds the catch-all BAD_REQUEST error used for every domain
// failure regardless of status code (conflicts, not-found, forbidden, ...).
func NewBadRequest(status int, message string) *AppError {
	return &AppError{Message: message, Code: "BAD_REQUEST", Status: status}
}

// NewTokenExpired is the one error with its own code, raised when a password
// reset token is past its validity window.
func NewTokenExpired() *AppError {
	return &AppError{Message: "token has expired", Code: "TOKEN_EXPIRED", Status: http.StatusGone}
}

func RespondError(c *gin.Context, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		c.JSON(http.StatusInternalServerError, AppError{
			Message: "internal server error",
			Code:    "INTERNAL_ERROR",
			Status:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(appErr.Status, appErr)
}

// RespondValidationError reports a request body that failed binding. Entity
// payloads answer 422; session credentials use 400 via status.
func RespondValidationError(c *gin.Context, status int, message string) {
	c.JSON(status, NewBadRequest(status, message))
}

func RespondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}
