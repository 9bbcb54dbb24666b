package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type CommunityHandler struct {
	members *service.MembershipService
	options *service.OptionsResolver
}

func NewCommunityHandler(members *service.MembershipService, options *service.OptionsResolver) *CommunityHandler {
	return &CommunityHandler{members: members, options: options}
}

// CreateCommunity creates a community owned by the caller
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "name is required")
		return
	}

	community, err := h.members.CreateCommunity(c.Request.Context(), input.Name, input.Description, userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, gin.H{"community": community})
}

func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	community, err := h.members.Community(c.Request.Context(), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"community": community})
}

func (h *CommunityHandler) GetOptions(c *gin.Context) {
	community, err := h.members.Community(c.Request.Context(), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	opts, err := h.options.Get(c.Request.Context(), community.ID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"communityOptions": opts})
}

// UpdateOptions changes auto-approval and the spam threshold (moderator only)
func (h *CommunityHandler) UpdateOptions(c *gin.Context) {
	var input service.OptionsUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "invalid options")
		return
	}

	community, err := h.members.Community(c.Request.Context(), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	opts, err := h.options.Update(c.Request.Context(), community.ID, input)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"communityOptions": opts})
}

// SuggestedSort sets the default comment sort of a community. srName must be
// a t5_ id and the caller must moderate it.
func (h *CommunityHandler) SuggestedSort(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		SrName               string `json:"srName"`
		SuggestedCommentSort string `json:"suggestedCommentSort"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "invalid request")
		return
	}
	if !models.HasTag(input.SrName, models.TagCommunity) {
		failed(c, http.StatusBadRequest, "invalid srName")
		return
	}

	isMod, err := h.members.IsModerator(c.Request.Context(), input.SrName, userID)
	if err != nil {
		fail(c, err)
		return
	}
	if !isMod {
		fail(c, service.ErrNotModerator)
		return
	}

	if err := h.options.SetSuggestedSort(c.Request.Context(), input.SrName, input.SuggestedCommentSort); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}
