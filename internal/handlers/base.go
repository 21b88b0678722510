package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"livepoll/internal/services"
	"livepoll/internal/storage"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, storage.ErrDuplicateVote):
		jsonError(c, http.StatusBadRequest, storage.ErrDuplicateVote.Error())
	case errors.Is(err, storage.ErrInvalidOption):
		jsonError(c, http.StatusBadRequest, storage.ErrInvalidOption.Error())
	case errors.Is(err, storage.ErrEmailTaken):
		jsonError(c, http.StatusBadRequest, storage.ErrEmailTaken.Error())
	case errors.Is(err, services.ErrCannotDeleteSelf):
		jsonError(c, http.StatusBadRequest, services.ErrCannotDeleteSelf.Error())
	case errors.Is(err, services.ErrInvalidLogin):
		jsonError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrForbidden):
		jsonError(c, http.StatusForbidden, "Not authorized")
	case errors.Is(err, storage.ErrNotFound):
		jsonError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrPollNotVotable):
		jsonError(c, http.StatusConflict, storage.ErrPollNotVotable.Error())
	default:
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		jsonError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func jsonError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// bindJSON reports binding failures as 400 and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
