package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "ad-board/internal/transport/http/response"
)

const MsgBodyTooLarge = "request body too large"

// MaxBodyBytes 限制请求体大小；n<=0 不限制
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n <= 0 {
			c.Next()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if len(c.Errors) > 0 && !c.Writer.Written() && IsBodyTooLarge(c.Errors.Last().Err) {
			resp.Abort(c, resp.CodeBadRequest, MsgBodyTooLarge)
		}
	}
}

func IsBodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
