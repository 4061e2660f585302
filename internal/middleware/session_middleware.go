package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// SessionMiddleware guards the account surface with Redis-backed bearer
// sessions.
type SessionMiddleware struct {
	authService *service.AuthService
}

// NewSessionMiddleware constructs a SessionMiddleware.
func NewSessionMiddleware(authService *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{authService: authService}
}

// Handle resolves the bearer token to a session and stores the account
// identity in the gin context.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing or malformed authorization header")
			c.Abort()
			return
		}

		session, err := m.authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if err == utils.ErrSessionExpired {
				utils.Error(c, 401, "SESSION_EXPIRED", "Session expired, please log in again")
			} else {
				utils.Error(c, 500, "INTERNAL_ERROR", "Session lookup failed")
			}
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("email", session.Email)
		c.Set("is_admin", session.IsAdmin)
		c.Set("session_token", token)
		c.Next()
	}
}
