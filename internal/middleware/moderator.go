package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/service"
)

type ModeratorChecker interface {
	IsModerator(ctx context.Context, communityRef, userID string) (bool, error)
}

// RequireModerator lets the request through only when the caller moderates
// the community named by the :subreddit path parameter.
func RequireModerator(checker ModeratorChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := checker.IsModerator(c.Request.Context(), c.Param("subreddit"), UserID(c))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"status": "failed", "message": "community not found"})
			return
		case errors.Is(err, service.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "failed", "message": "invalid community"})
			return
		case err != nil:
			slog.Error("moderator check failed", "community", c.Param("subreddit"), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "failed", "message": "internal error"})
			return
		case !ok:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "failed", "message": "you are not a moderator of this community"})
			return
		}
		c.Next()
	}
}
