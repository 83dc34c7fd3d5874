package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Error 携带返回给客户端的消息，Kind 用于 errors.Is 分类
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NotFound(kind string) error {
	return &Error{Kind: ErrNotFound, Msg: kind + " not found"}
}

func Conflict(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Msg: msg, Err: cause}
}
