package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/readit/backend/internal/models"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

type AuthHandler struct {
	accounts *service.AccountService
}

func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "username, a valid email and a 6 character password are required")
		return
	}

	resp, err := h.accounts.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, gin.H{"token": resp.Token, "user": resp.User})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failed(c, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.accounts.Login(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"token": resp.Token, "user": resp.User})
}

// GetMe returns the authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	user, err := h.accounts.User(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"user": user})
}
