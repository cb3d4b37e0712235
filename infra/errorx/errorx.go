// Package errorx 带错误码的 error, 便于调用方按码分类处理
package errorx

import (
	"errors"
	"fmt"

	"volcombine/infra/errorx/errCode"
)

type Error struct {
	Code  errCode.Code
	Msg   string
	cause error
}

func New(code errCode.Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Wrap 保留底层错误, errors.Is / errors.As 可以穿透
func Wrap(code errCode.Code, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Is 同码同消息视为同一错误, 用于包级哨兵错误比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Msg == t.Msg
}

// CodeOf 取链上第一个带码错误的码, 非errorx错误返回 INVALID_VALUE
func CodeOf(err error) errCode.Code {
	if err == nil {
		return errCode.OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return errCode.INVALID_VALUE
}
