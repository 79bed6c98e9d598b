package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskord/taskord-api/pkg/helpers"
	"github.com/taskord/taskord-api/pkg/response"
)

const CtxUsernameKey = "username"

// Auth gates every task/comment route behind a bearer token. Missing,
// malformed, expired and badly signed tokens all produce the same generic
// 401 so the response never reveals which check failed.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, prefix) {
			unauthorized(c)
			return
		}
		username, err := tokens.Validate(strings.TrimPrefix(header, prefix))
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(CtxUsernameKey, username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
	c.Abort()
}
