package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moizhassan7/crisp-cms/internal/services"
)

// AuthMiddleware gates the admin API behind a session cookie. Requests
// without a live session get a 401; the admin SPA turns that into a
// redirect to its login route.
type AuthMiddleware struct {
	auth       *services.AuthService
	cookieName string
}

func NewAuthMiddleware(auth *services.AuthService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, cookieName: cookieName}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(am.cookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		username, valid := am.auth.Validate(token)
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
