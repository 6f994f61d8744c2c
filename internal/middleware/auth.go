package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/epeers/preflists/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	AdminTokenHeader = "X-Admin-Token"
	AdminKey         = "admin"
)

// RequireAdminToken guards write endpoints. An empty token disables the check,
// which is the default for a local single-user install.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		given := c.GetHeader(AdminTokenHeader)
		if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			log.Warnf("Rejected write to %s: missing or invalid admin token (request %s)", c.FullPath(), GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "a valid " + AdminTokenHeader + " header is required",
			})
			return
		}

		c.Set(AdminKey, true)
		c.Next()
	}
}

// IsAdmin reports whether the request passed RequireAdminToken with a token
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(AdminKey)
}
