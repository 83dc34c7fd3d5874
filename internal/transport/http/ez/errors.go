package ez

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ad-board/internal/core/schema"
	"ad-board/internal/domain"
	resp "ad-board/internal/transport/http/response"
)

// AErr 动作内直接指定状态码的错误
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// WriteError 错误到状态码的唯一映射点；5xx 的原因只进日志，不返回给客户端
func WriteError(c *gin.Context, err error) {
	var (
		se *schema.Error
		de *domain.Error
		ae *AErr
	)
	switch {
	case errors.As(err, &se):
		resp.Abort(c, resp.CodeBadRequest, se.Detail)
	case errors.As(err, &de) && errors.Is(de.Kind, domain.ErrNotFound):
		resp.Abort(c, resp.CodeNotFound, de.Msg)
	case errors.As(err, &de) && errors.Is(de.Kind, domain.ErrConflict):
		resp.Abort(c, resp.CodeConflict, de.Msg)
	case errors.As(err, &ae):
		if ae.Code >= resp.CodeServerError {
			_ = c.Error(err)
			resp.Abort(c, ae.Code, "")
			return
		}
		resp.Abort(c, ae.Code, ae.Msg)
	default:
		_ = c.Error(err)
		resp.Abort(c, resp.CodeServerError, "")
	}
}
