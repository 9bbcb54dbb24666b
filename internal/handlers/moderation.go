package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type ModerationHandler struct {
	moderation *service.ModerationService
	members    *service.MembershipService
}

func NewModerationHandler(moderation *service.ModerationService, members *service.MembershipService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, members: members}
}

// ReportSpam flags a post or comment as spam
func (h *ModerationHandler) ReportSpam(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input models.SpamRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "linkID is required")
		return
	}
	target, err := models.ParseTarget(input.LinkID)
	if err != nil {
		failed(c, http.StatusBadRequest, "invalid linkID")
		return
	}

	res, err := h.moderation.ReportSpam(c.Request.Context(), target, userID, input.SpamType, input.SpamText)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"spamCount": res.SpamCount, "removed": res.Removed})
}

// Approve clears spam state on a post or comment (moderator only)
func (h *ModerationHandler) Approve(c *gin.Context) {
	var input struct {
		LinkID string `json:"linkID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "linkID is required")
		return
	}
	target, err := models.ParseTarget(input.LinkID)
	if err != nil {
		failed(c, http.StatusBadRequest, "invalid linkID")
		return
	}

	community, err := h.members.Community(c.Request.Context(), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.moderation.Approve(c.Request.Context(), community.ID, target); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

// BanOrMute applies ban, unban, mute or unmute to a user (moderator only)
func (h *ModerationHandler) BanOrMute(c *gin.Context) {
	moderatorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		UserID    string `json:"userID" binding:"required"`
		Operation string `json:"operation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "userID and operation are required")
		return
	}

	err := h.members.BanOrMute(c.Request.Context(), c.Param("subreddit"), moderatorID, input.UserID, input.Operation)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *ModerationHandler) Banned(c *gin.Context) {
	h.restricted(c, models.RestrictionBanned)
}

func (h *ModerationHandler) Muted(c *gin.Context) {
	h.restricted(c, models.RestrictionMuted)
}

func (h *ModerationHandler) restricted(c *gin.Context, kind models.RestrictionKind) {
	users, err := h.members.Restricted(c.Request.Context(), c.Param("subreddit"), kind)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"users": users})
}

func (h *ModerationHandler) Moderators(c *gin.Context) {
	users, err := h.members.Moderators(c.Request.Context(), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"moderators": users})
}

// InviteModerator invites a user to moderate the community (moderator only)
func (h *ModerationHandler) InviteModerator(c *gin.Context) {
	inviterID, ok := extractUserID(c)
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

	if err := h.members.InviteModerator(c.Request.Context(), c.Param("subreddit"), inviterID, input.UserID); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *ModerationHandler) AcceptModeratorInvite(c *gin.Context) {
	h.selfAction(c, h.members.AcceptModeratorInvite)
}

func (h *ModerationHandler) DeclineModeratorInvite(c *gin.Context) {
	h.selfAction(c, h.members.RemoveModeratorInvitation)
}

func (h *ModerationHandler) LeaveModerator(c *gin.Context) {
	h.selfAction(c, h.members.LeaveModerator)
}

// selfAction runs a membership change that the caller applies to themselves.
func (h *ModerationHandler) selfAction(c *gin.Context, action func(ctx context.Context, communityRef, userID string) error) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	if err := action(c.Request.Context(), c.Param("subreddit"), userID); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}
