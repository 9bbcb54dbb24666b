package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type PostHandler struct {
	content *service.ContentService
}

func NewPostHandler(content *service.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// GetPosts lists posts by criteria (new, top, hot), optionally inside one community
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.content.ListPosts(c.Request.Context(), c.Param("criteria"), c.Param("subreddit"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"posts": posts})
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "Title is required")
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), userID, input.CommunityID, input.Title, input.Text)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, gin.H{"post": post})
}

type saveRequest struct {
	LinkID string `json:"linkID" binding:"required"`
}

// SavePost bookmarks a post for the caller
func (h *PostHandler) SavePost(c *gin.Context) {
	h.bookmark(c, h.content.SavePost, "Post is saved successfully")
}

func (h *PostHandler) UnsavePost(c *gin.Context) {
	h.bookmark(c, h.content.UnsavePost, "Post is unsaved successfully")
}

func (h *PostHandler) bookmark(c *gin.Context, apply func(context.Context, string, string) error, message string) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input saveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "No linkID is provided!")
		return
	}

	if err := apply(c.Request.Context(), userID, input.LinkID); err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": message})
}

func (h *PostHandler) SavedPosts(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	posts, err := h.content.SavedPosts(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"posts": posts})
}
