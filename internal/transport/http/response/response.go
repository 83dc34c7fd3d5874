package response

import "github.com/gin-gonic/gin"

// Err 所有错误响应的 body：字符串或结构化 detail
type Err struct {
	Error any `json:"error"`
}

type Status struct {
	Status string `json:"status"`
}

// Error detail 为空字符串时使用 code 的默认文案
func Error(code int, detail any) Err {
	if s, ok := detail.(string); ok && s == "" {
		detail = CodeMsgMap[code]
	}
	if detail == nil {
		detail = CodeMsgMap[code]
	}
	return Err{Error: detail}
}

// OK {"status":"ok"}
func OK() Status { return Status{Status: "ok"} }

func Abort(c *gin.Context, code int, detail any) {
	c.AbortWithStatusJSON(code, Error(code, detail))
}

// Created 新建资源后返回的 id
type Created struct {
	ID int64 `json:"id"`
}
