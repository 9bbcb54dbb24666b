package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type CommentHandler struct {
	content    *service.ContentService
	moderation *service.ModerationService
}

func NewCommentHandler(content *service.ContentService, moderation *service.ModerationService) *CommentHandler {
	return &CommentHandler{content: content, moderation: moderation}
}

// GetComments returns a post's comments in its community's suggested order
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, sort, err := h.content.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"comments": comments, "sort": sort})
}

// AddComment adds a top-level comment; parentID must be a post
func (h *CommentHandler) AddComment(c *gin.Context) {
	h.create(c, models.TagPost)
}

// AddReply answers a comment; parentID must be a comment
func (h *CommentHandler) AddReply(c *gin.Context) {
	h.create(c, models.TagComment)
}

func (h *CommentHandler) create(c *gin.Context, parentTag string) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "parentID and text are required")
		return
	}
	if !models.HasTag(input.ParentID, parentTag) {
		failed(c, http.StatusBadRequest, "invalid parentID")
		return
	}

	comment, err := h.content.AddComment(c.Request.Context(), userID, input.ParentID, input.Text)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, gin.H{"comment": comment})
}

// ShowComment un-collapses a comment hidden by spam reports
func (h *CommentHandler) ShowComment(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.moderation.ShowComment(c.Request.Context(), input.ID); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}
