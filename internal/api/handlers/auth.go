package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/services"
)

type AuthHandler struct {
	auth       *services.AuthService
	cookieName string
	maxAge     int
	logger     *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, cookieName string, maxAge int, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		cookieName: cookieName,
		maxAge:     maxAge,
		logger:     logger.With(zap.String("handler", "auth")),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	token, err := ah.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ah.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.SetCookie(ah.cookieName, token, ah.maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"username": req.Username})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(ah.cookieName); err == nil {
		ah.auth.Logout(token)
	}
	c.SetCookie(ah.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Session reports whether the caller currently holds a live session. The
// admin SPA calls this on boot to decide between panel and login screen.
func (ah *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(ah.cookieName)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	username, valid := ah.auth.Validate(token)
	c.JSON(http.StatusOK, gin.H{"authenticated": valid, "username": username})
}
