package handlers

import (
	"errors"
	"net/http"
	"strings"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	Svc    user.UserService
	Logger *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc user.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	u, err := h.Svc.Register(req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			return
		}
		h.Logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": u})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	u, token, err := h.Svc.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": u, "token": token}})
}

// Me handles GET /api/auth/me, returning the authenticated user's account.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "User not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

// Logout handles POST /api/auth/logout. The bearer token is revoked so it
// stops working before its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		utils.JSONError(c, http.StatusBadRequest, "Missing bearer token", "")
		return
	}
	if err := h.Svc.RevokeToken(token); err != nil {
		h.Logger.Error("logout failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
