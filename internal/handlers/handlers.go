package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/middleware"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Vote         *VoteHandler
	Moderation   *ModerationHandler
	Community    *CommunityHandler
	Post         *PostHandler
	Comment      *CommentHandler
	User         *UserHandler
	Notification *NotificationHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *service.Services) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Accounts),
		Vote:         NewVoteHandler(svc.Votes),
		Moderation:   NewModerationHandler(svc.Moderation, svc.Members),
		Community:    NewCommunityHandler(svc.Members, svc.Options),
		Post:         NewPostHandler(svc.Content),
		Comment:      NewCommentHandler(svc.Content, svc.Moderation),
		User:         NewUserHandler(svc.Accounts, svc.Votes, svc.Members),
		Notification: NewNotificationHandler(svc.Notifications),
	}
}

func success(c *gin.Context, code int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["status"] = "success"
	c.JSON(code, body)
}

func failed(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "failed", "message": message})
}

// fail maps a service error onto its status code.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		failed(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrDuplicateReport),
		errors.Is(err, service.ErrBanned):
		failed(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotInvited), errors.Is(err, service.ErrNotModerator):
		failed(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		failed(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUpdateFailed):
		failed(c, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		failed(c, http.StatusInternalServerError, "internal error")
	}
}

// extractUserID returns the authenticated caller or writes a 401.
func extractUserID(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		failed(c, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return userID, true
}
