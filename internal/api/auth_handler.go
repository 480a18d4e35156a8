package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipegen/internal/auth"
)

const claimsKey = "claims"

// AuthService defines the account operations the auth handlers need.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*auth.User, error)
	Login(ctx context.Context, email, password string) (string, *auth.User, error)
	ParseToken(token string) (*auth.Claims, error)
}

// AuthHandler handles account registration and login.
type AuthHandler struct {
	Service AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{Service: service, logger: logger}
}

// Register mounts the auth routes under /api/auth.
func (h *AuthHandler) Register(r gin.IRouter) {
	g := r.Group("/api/auth")
	g.POST("/register", h.SignUp)
	g.POST("/login", h.Login)
	g.GET("/me", h.Authenticate, h.Me)
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func publicUser(u *auth.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email}
}

// SignUp creates an account.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %s", err.Error())})
		return
	}

	user, err := h.Service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	case errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!", "user": publicUser(user)})
}

// Login checks credentials and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %s", err.Error())})
		return
	}

	token, user, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": publicUser(user)})
}

// Authenticate rejects requests without a valid bearer token and stores the
// token's claims on the context.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	claims, err := h.Service.ParseToken(strings.TrimSpace(token))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(claimsKey, claims)
	c.Next()
}

// Me returns the identity carried by the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*auth.Claims)
	c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "email": claims.Email})
}
