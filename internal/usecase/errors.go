package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind はAPIに返すエラーの分類
type ErrorKind string

const (
	KindInvalidArgument    ErrorKind = "INVALID_ARGUMENT"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindFailedPrecondition ErrorKind = "FAILED_PRECONDITION"
	KindAlreadyExists      ErrorKind = "ALREADY_EXISTS"
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindPermissionDenied   ErrorKind = "PERMISSION_DENIED"
	KindInternal           ErrorKind = "INTERNAL"
)

// AppError はhandlerがそのままレスポンスにできるエラー。
// Messageにストレージの詳細は入れない
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPステータスへの対応
func (e *AppError) Status() int {
	switch e.Kind {
	case KindInvalidArgument, KindFailedPrecondition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func newAppError(kind ErrorKind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func InvalidArgument(message string) error    { return newAppError(KindInvalidArgument, message) }
func NotFound(message string) error           { return newAppError(KindNotFound, message) }
func FailedPrecondition(message string) error { return newAppError(KindFailedPrecondition, message) }
func AlreadyExists(message string) error      { return newAppError(KindAlreadyExists, message) }
func Unauthenticated(message string) error    { return newAppError(KindUnauthenticated, message) }
func PermissionDenied(message string) error   { return newAppError(KindPermissionDenied, message) }
func Internal(message string) error           { return newAppError(KindInternal, message) }

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// 未ログイン
var errUnauthorized = Unauthenticated("unauthorized")
