package handlers

import (
	"errors"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/services"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.IUserService
	jwtService  *services.JWTService
}

func NewAuthHandler(userService services.IUserService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/register/", h.Register)
	r.POST("/login/", h.Login)
	r.POST("/api/token/", h.ObtainTokenPair)
	r.POST("/api/token/refresh/", h.RefreshToken)

	authed := r.Group("/", RequireAuth(h.jwtService))
	authed.POST("/logout/", h.Logout)
	authed.GET("/auth/status/", h.AuthStatus)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, tokens, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.mapRegisterError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User registered successfully",
		"user":      user,
		"user_type": user.UserType,
		"refresh":   tokens.Refresh,
		"access":    tokens.Access,
	})
}

func (h *AuthHandler) mapRegisterError(c *gin.Context, err error) {
	if strings.Contains(err.Error(), "already exists") {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	deviceInfo := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	result, err := h.userService.Login(c.Request.Context(), req, &deviceInfo, &ipAddress)
	if err != nil {
		// Failed login is a 400, like any other bad form submission. 401 is
		// reserved for bearer-token failures in the middleware.
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ObtainTokenPair issues an access/refresh pair against raw credentials,
// without creating a session.
func (h *AuthHandler) ObtainTokenPair(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result, err := h.userService.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh": result.Refresh,
		"access":  result.Access,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	tokens, err := h.jwtService.RefreshTokenPair(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh": tokens.Refresh,
		"access":  tokens.Access,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.userService.Logout(c.Request.Context(), claims.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) AuthStatus(c *gin.Context) {
	claims := ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
		"user_type":     user.UserType,
	})
}
