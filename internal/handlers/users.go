package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type UserHandler struct {
	accounts *service.AccountService
	votes    *service.VoteService
	members  *service.MembershipService
}

func NewUserHandler(accounts *service.AccountService, votes *service.VoteService, members *service.MembershipService) *UserHandler {
	return &UserHandler{accounts: accounts, votes: votes, members: members}
}

// GetUserProfile returns a user by id or username
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	user, err := h.accounts.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Upvoted(c *gin.Context) {
	h.voted(c, models.Upvote)
}

func (h *UserHandler) Downvoted(c *gin.Context) {
	h.voted(c, models.Downvote)
}

func (h *UserHandler) voted(c *gin.Context, voteType int) {
	user, err := h.accounts.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	votes, err := h.votes.UserVotes(c.Request.Context(), user.ID, voteType)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"votes": votes})
}

// Subscribe subscribes to a community or follows a user
func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		SrName string `json:"srName"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "invalid request")
		return
	}

	res := h.members.Subscribe(c.Request.Context(), input.SrName, input.Action, userID)
	if res.Err != nil {
		fail(c, res.Err)
		return
	}
	success(c, http.StatusOK, gin.H{"state": res.State})
}

func (h *UserHandler) SubscribedCommunities(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	communities, err := h.members.SubscribedCommunities(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"communities": communities})
}

func (h *UserHandler) ModeratedCommunities(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	communities, err := h.members.ModeratedCommunities(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"communities": communities})
}

// AddFriend befriends another user in both directions
func (h *UserHandler) AddFriend(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		UserID string `json:"userID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "userID is required")
		return
	}

	if err := h.members.AddFriend(c.Request.Context(), userID, input.UserID); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *UserHandler) Followers(c *gin.Context) {
	h.related(c, c.Param("id"), h.members.Followers)
}

func (h *UserHandler) Following(c *gin.Context) {
	h.related(c, c.Param("id"), h.members.Following)
}

// Friends lists the caller's friends
func (h *UserHandler) Friends(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	h.related(c, userID, h.members.Friends)
}

func (h *UserHandler) Blocked(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	h.related(c, userID, h.members.Blocked)
}

func (h *UserHandler) related(c *gin.Context, userRef string, list func(context.Context, string) ([]models.User, error)) {
	users, err := list(c.Request.Context(), userRef)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"users": users})
}

// BlockUser blocks or unblocks another user
func (h *UserHandler) BlockUser(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		UserID string `json:"userID" binding:"required"`
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "userID and action are required")
		return
	}

	if err := h.members.Block(c.Request.Context(), userID, input.UserID, input.Action); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Blocks are updated successfully"})
}
