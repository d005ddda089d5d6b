package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/J-Ferr/ecommerce-api/internal/middleware"
	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// usecaseのエラーをHTTPレスポンスにする
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		return c.JSON(ae.Status(), ErrorResponse{Error: ae.Message, Code: string(ae.Kind)})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: string(usecase.KindInternal)})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: string(usecase.KindInvalidArgument)})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// echo自身が返すエラー（404/405/panic復帰など）も同じ形にそろえる
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if he.Code >= http.StatusInternalServerError {
				log.ErrorContext(c.Request().Context(), "http error", "error", err)
				msg = "internal error"
			}
			_ = c.JSON(he.Code, ErrorResponse{Error: msg, Code: string(kindForStatus(he.Code))})
			return
		}

		if _, ok := usecase.AsAppError(err); !ok {
			log.ErrorContext(c.Request().Context(), "unhandled error", "error", err)
		}
		_ = writeError(c, err)
	}
}

func kindForStatus(status int) usecase.ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return usecase.KindUnauthenticated
	case http.StatusForbidden:
		return usecase.KindPermissionDenied
	case http.StatusNotFound:
		return usecase.KindNotFound
	case http.StatusConflict:
		return usecase.KindAlreadyExists
	}
	if status >= http.StatusInternalServerError {
		return usecase.KindInternal
	}
	return usecase.KindInvalidArgument
}
