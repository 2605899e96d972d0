package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"recruitfunnel/site/middleware"
	"recruitfunnel/site/models"
	"recruitfunnel/site/store"
	"recruitfunnel/site/utils"
)

// UserLookup finds admin users by email.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandlers struct {
	Users        UserLookup
	Tokens       *utils.JWTManager
	SecureCookie bool
	logger       *zap.Logger
}

func NewAuthHandlers(users UserLookup, tokens *utils.JWTManager, secureCookie bool, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{Users: users, Tokens: tokens, SecureCookie: secureCookie, logger: logger}
}

// Login handles user authentication and JWT token creation.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// Accounts are stored with lowercased emails.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("login lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := h.Tokens.GenerateJWT(user)
	if err != nil {
		h.logger.Error("failed to generate JWT", zap.Int("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, tokenString, int(h.Tokens.TTL().Seconds()), "/", "", h.SecureCookie, true)

	h.logger.Info("user logged in", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"user_email": user.Email,
		"role":       user.Role,
	})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
