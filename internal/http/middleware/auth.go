package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gallery-backend/internal/http/handlers/common"
	"github.com/ignatzorin/gallery-backend/internal/service"
)

// AuthMiddleware проверяет Bearer токен и сверяет его с текущей сессией:
// после logout токен перестаёт приниматься, даже если ещё не истёк.
func AuthMiddleware(tokens *service.TokenManager, auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		email, err := tokens.Parse(raw)
		if err != nil || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		state := auth.State()
		if !state.IsAuthenticated() || state.Email != email {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "сессия завершена"})
			return
		}

		c.Set(common.ContextEmailKey, email)
		c.Next()
	}
}
