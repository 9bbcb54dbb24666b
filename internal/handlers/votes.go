package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Vote upvotes or downvotes a post (t3_) or comment (t1_)
func (h *VoteHandler) Vote(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Dir == nil {
		failed(c, http.StatusBadRequest, "id and a numeric dir are required")
		return
	}

	target, err := models.ParseTarget(input.ID)
	if err != nil {
		failed(c, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := h.votes.Vote(c.Request.Context(), target, userID, *input.Dir)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"votesCount": res.VotesCount, "voteType": res.VoteType})
}
