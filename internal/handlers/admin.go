package handlers

import (
	"net/http"
	"time"

	"livepoll/internal/middleware"
	"livepoll/internal/models"
	"livepoll/internal/services"
	"livepoll/internal/storage"
	"livepoll/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	systemStatsKey = "stats:system"
	systemStatsTTL = 10 * time.Second
)

type AdminHandler struct {
	users *services.UserService
	polls *services.PollService
	store *storage.Store
	cache *utils.Cache
}

func NewAdminHandler(users *services.UserService, polls *services.PollService, store *storage.Store, cache *utils.Cache) *AdminHandler {
	return &AdminHandler{users: users, polls: polls, store: store, cache: cache}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user with their votes and polls.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.polls.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(systemStatsKey)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) DeletePoll(c *gin.Context) {
	if err := h.polls.DeletePoll(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(systemStatsKey)
	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}

// SystemStats is cached briefly; the admin dashboard polls it.
func (h *AdminHandler) SystemStats(c *gin.Context) {
	if cached, ok := h.cache.Get(systemStatsKey).(models.SystemStats); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	stats, err := h.store.SystemStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Set(systemStatsKey, stats, systemStatsTTL)
	c.JSON(http.StatusOK, stats)
}
