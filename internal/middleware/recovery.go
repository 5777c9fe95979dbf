package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feedback-collector/backend/internal/types"
)

// Recovery converts panics into a generic 500 response. The underlying error
// detail is included only in development mode.
func Recovery(logger *zap.SugaredLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered", "error", r, "path", c.Request.URL.Path)
				resp := types.MessageResponse{Message: "Something went wrong!"}
				if development {
					resp.Error = fmt.Sprintf("%v", r)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
