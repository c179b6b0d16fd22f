package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/opsdash-dev/opsdash/internal/auth"
	"github.com/opsdash-dev/opsdash/internal/types"
)

type AuthenticatedUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Dev bypass for setups without a directory server.
		if os.Getenv("AUTH_DISABLED") == "true" {
			ctx.Set(types.ContextUserKey, AuthenticatedUser{
				Username:    "dev",
				DisplayName: "Developer",
			})
			ctx.Next()
			return
		}

		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})

			return
		}

		tokenString := parts[1]

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		username, ok := claims["username"].(string)

		if !ok || username == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid username in token claims"})
			return
		}

		displayName, _ := claims["display_name"].(string)

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			Username:    username,
			DisplayName: displayName,
		})
		ctx.Next()
	}
}
