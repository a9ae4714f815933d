package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/diascribe/auth"
	apperrors "github.com/skillsenselab/diascribe/errors"
)

// claimsContextKey is the Gin context key holding validated claims.
const claimsContextKey = "auth_claims"

// AuthConfig configures the bearer token authentication middleware.
type AuthConfig struct {
	// Validator validates a token string and returns the claims.
	Validator auth.TokenValidator
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth returns a Gin middleware that validates Bearer tokens using the
// configured validator. Validated claims are stored in the Gin context
// and can be retrieved with ClaimsFromContext.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Validator.ValidateToken(parts[1])
		if err != nil {
			appErr := apperrors.InvalidToken()
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims stored by Auth, or nil
// if the request was not authenticated.
func ClaimsFromContext(c *gin.Context) any {
	claims, _ := c.Get(claimsContextKey)
	return claims
}

func abortUnauthorized(c *gin.Context, reason string) {
	appErr := apperrors.Unauthorized(reason)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
