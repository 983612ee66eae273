package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	headerAPIKey  = "X-API-Key"
	queryAPIKey   = "api_key"
	authHeaderKey = "Authorization"
)

// publicPaths defines routes that don't require authentication
var publicPaths = []string{
	"/health",
}

func isPublicPath(path string) bool {
	for _, publicPath := range publicPaths {
		if path == publicPath || strings.HasPrefix(path, publicPath+"/") {
			return true
		}
	}
	return false
}

// Auth enforces the API key when AUTOSCRIBE_API_KEY is set; without
// it the API stays open, which is the expected localhost setup.
func Auth() gin.HandlerFunc {
	expectedKey := os.Getenv("AUTOSCRIBE_API_KEY")
	if expectedKey == "" {
		expectedKey = os.Getenv("API_KEY")
	}

	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if expectedKey == "" {
			c.Next()
			return
		}

		provided := extractKey(c)

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) == 1 {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func extractKey(c *gin.Context) string {
	if key := c.GetHeader(headerAPIKey); key != "" {
		return key
	}
	if auth := c.GetHeader(authHeaderKey); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query(queryAPIKey)
}
