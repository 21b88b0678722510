package handlers

import (
	"log/slog"
	"net/http"

	"livepoll/internal/middleware"
	"livepoll/internal/services"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	polls *services.PollService
}

func NewPollHandler(polls *services.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

type createPollRequest struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	AllowMultiple bool     `json:"allowMultiple"`
	ShowResults   *bool    `json:"showResults"`
}

type voteRequest struct {
	OptionID string `json:"optionId"`
}

type publishRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

// List returns all polls; ?sort=trending orders them by recent vote activity.
func (h *PollHandler) List(c *gin.Context) {
	views, err := h.polls.ListPolls(c.Request.Context(), c.Query("sort") == "trending")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *PollHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	views, err := h.polls.ListUserPolls(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *PollHandler) Get(c *gin.Context) {
	view, err := h.polls.GetPoll(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PollHandler) Create(c *gin.Context) {
	var req createPollRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.polls.CreatePoll(c.Request.Context(), middleware.CurrentUser(c), services.CreatePollInput{
		Question:      req.Question,
		Options:       req.Options,
		AllowMultiple: req.AllowMultiple,
		ShowResults:   req.ShowResults,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PollHandler) Delete(c *gin.Context) {
	if err := h.polls.DeletePoll(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}

func (h *PollHandler) SetPublished(c *gin.Context) {
	var req publishRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.polls.SetPublished(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), *req.IsPublished)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PollHandler) Vote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	vote, view, err := h.polls.CastVote(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.OptionID)
	if err != nil {
		if vote == nil {
			respondError(c, err)
			return
		}
		// Committed; only the reload failed.
		slog.Warn("Vote recorded but poll reload failed", "poll_id", c.Param("id"), "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"vote": vote, "poll": view})
}

func (h *PollHandler) UserVotes(c *gin.Context) {
	votes, err := h.polls.UserVotes(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}
