package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
)

// AuthMiddleware resolves the principal from the bearer token, falling back
// to the token cookie. Protected routes answer 403 when no principal can be
// resolved.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := extractToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Authorization token is required"})
			return
		}

		user, err := authService.ResolvePrincipal(ctx.Request.Context(), tokenString)

		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
				return
			}
			log.Printf("Failed to resolve principal: %v", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.Set(types.ContextUserKey, *user)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) (string, bool) {
	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}

		return strings.TrimSpace(parts[1]), true
	}

	if cookie, err := ctx.Cookie(types.TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}
