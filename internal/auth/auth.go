package auth

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"wq_alpha_gen/configs"

	"github.com/gin-gonic/gin"
)

var secretToken string

func init() {
	config := configs.GetGlobalConfig()
	secretToken = config.CredentialConfig.Token
	if secretToken == "" {
		log.Fatal("FATAL: credential token is not configured.")
	}
}

// APIKeyAuthMiddleware checks the "Authorization: Bearer <token>" header on
// every request.
func APIKeyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.String(http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.String(http.StatusUnauthorized, "Authorization header format must be 'Bearer {token}'")
			c.Abort()
			return
		}

		providedToken := parts[1]

		if subtle.ConstantTimeCompare([]byte(providedToken), []byte(secretToken)) != 1 {
			c.String(http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
