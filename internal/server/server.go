package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/readit/backend/internal/auth"
	"github.com/emilythestrangee/readit/backend/internal/config"
	"github.com/emilythestrangee/readit/backend/internal/database"
	"github.com/emilythestrangee/readit/backend/internal/handlers"
	"github.com/emilythestrangee/readit/backend/internal/middleware"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	svc     *service.Services
	issuer  *auth.Issuer
	handler *handlers.Handler
}

func New(cfg *config.Config, db database.Service, svc *service.Services, issuer *auth.Issuer) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		svc:     svc,
		issuer:  issuer,
		handler: handlers.NewHandler(svc),
	}
}

// NewServer creates and configures the HTTP server
func NewServer(cfg *config.Config, db database.Service, svc *service.Services, issuer *auth.Issuer) *http.Server {
	s := New(cfg, db, svc, issuer)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("🚀 Server configured", "port", cfg.Port)
	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := s.handler
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		// Public reads
		api.GET("/posts/:criteria", h.Post.GetPosts)
		api.GET("/posts/r/:subreddit/:criteria", h.Post.GetPosts)
		api.GET("/comments/:id", h.Comment.GetComments)
		api.GET("/users/:id", h.User.GetUserProfile)
		api.GET("/users/:id/upvoted", h.User.Upvoted)
		api.GET("/users/:id/downvoted", h.User.Downvoted)
		api.GET("/users/:id/followers", h.User.Followers)
		api.GET("/users/:id/following", h.User.Following)
		api.GET("/r/:subreddit", h.Community.GetCommunity)
		api.GET("/r/:subreddit/banned", h.Moderation.Banned)
		api.GET("/r/:subreddit/muted", h.Moderation.Muted)
		api.GET("/r/:subreddit/moderators", h.Moderation.Moderators)
		api.GET("/r/:subreddit/options", h.Community.GetOptions)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.issuer))
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.GET("/me/subscribed", h.User.SubscribedCommunities)
			protected.GET("/me/moderates", h.User.ModeratedCommunities)
			protected.GET("/me/friends", h.User.Friends)
			protected.GET("/me/blocked", h.User.Blocked)
			protected.GET("/me/saved", h.Post.SavedPosts)

			protected.POST("/vote", h.Vote.Vote)
			protected.POST("/spam", h.Moderation.ReportSpam)
			protected.POST("/show-comment", h.Comment.ShowComment)
			protected.POST("/suggested-sort", h.Community.SuggestedSort)

			protected.POST("/communities", h.Community.CreateCommunity)
			protected.POST("/submit", h.Post.CreatePost)
			protected.POST("/addcomment", h.Comment.AddComment)
			protected.POST("/addreply", h.Comment.AddReply)

			protected.POST("/subscribe", h.User.Subscribe)
			protected.POST("/friend", h.User.AddFriend)
			protected.POST("/block-user", h.User.BlockUser)
			protected.POST("/save", h.Post.SavePost)
			protected.POST("/unsave", h.Post.UnsavePost)

			protected.GET("/notifications", h.Notification.List)
			protected.POST("/notifications/del", h.Notification.Delete)

			protected.POST("/r/:subreddit/accept-moderator-invite", h.Moderation.AcceptModeratorInvite)
			protected.POST("/r/:subreddit/decline-moderator-invite", h.Moderation.DeclineModeratorInvite)
			protected.POST("/r/:subreddit/leave-moderator", h.Moderation.LeaveModerator)

			// Moderator routes
			mod := protected.Group("/r/:subreddit")
			mod.Use(middleware.RequireModerator(s.svc.Members))
			{
				mod.POST("/approve", h.Moderation.Approve)
				mod.POST("/ban-or-mute", h.Moderation.BanOrMute)
				mod.POST("/invite-moderator", h.Moderation.InviteModerator)
				mod.POST("/options", h.Community.UpdateOptions)
			}
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.db.Health()
	code := http.StatusOK
	if stats["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, stats)
}
