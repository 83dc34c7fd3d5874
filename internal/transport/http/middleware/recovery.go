package middleware

import (
	"github.com/gin-gonic/gin"

	resp "ad-board/internal/transport/http/response"
)

// RecoveryJSON 给 ginzap.CustomRecoveryWithZap 用，panic 已由 ginzap 记录
func RecoveryJSON(c *gin.Context, _ any) {
	resp.Abort(c, resp.CodeServerError, "")
}
