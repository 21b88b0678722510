package handlers

import (
	"net/http"

	"livepoll/internal/middleware"
	"livepoll/internal/storage"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	store *storage.Store
}

func NewStatsHandler(store *storage.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// UserStats summarises the current user's polls and the votes they drew.
func (h *StatsHandler) UserStats(c *gin.Context) {
	stats, err := h.store.UserStats(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
