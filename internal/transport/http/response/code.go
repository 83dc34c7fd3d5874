package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeBadRequest  = http.StatusBadRequest
	CodeNotFound    = http.StatusNotFound
	CodeConflict    = http.StatusConflict
	CodeServerError = http.StatusInternalServerError
	CodeUnavailable = http.StatusServiceUnavailable
	CodeTimeout     = http.StatusGatewayTimeout
)

// CodeMsgMap 各状态码的默认 error 文案
var CodeMsgMap = map[int]string{
	CodeBadRequest:  "bad request",
	CodeNotFound:    "not found",
	CodeConflict:    "conflict",
	CodeServerError: "internal error",
	CodeUnavailable: "server busy",
	CodeTimeout:     "timeout",
}
