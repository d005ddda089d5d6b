package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

// Validator はリクエストボディ検証（echo.Validator）と認証入力の検証を兼ねる
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// echo.Validator。c.Validate から呼ばれる
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return toAppError(err)
	}
	return nil
}

type registerInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=72"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// サインアップの入力を検証
func (cv *Validator) ValidateRegister(ctx context.Context, email string, password string) error {
	err := cv.v.StructCtx(ctx, registerInput{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && ves[0].Field() == "Password" {
		if ves[0].Tag() == "max" {
			return usecase.InvalidArgument("password is too long")
		}
		return usecase.InvalidArgument(fmt.Sprintf("password must be at least %d chars", minPasswordLength))
	}
	return usecase.InvalidArgument("valid email is required")
}

// ログインの入力を検証
func (cv *Validator) ValidateLogin(ctx context.Context, email string, password string) error {
	if err := cv.v.StructCtx(ctx, loginInput{Email: email, Password: password}); err != nil {
		return usecase.InvalidArgument("email and password required")
	}
	return nil
}

// 最初の違反だけをメッセージにする
func toAppError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return usecase.InvalidArgument("invalid request")
	}
	fe := ves[0]
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return usecase.InvalidArgument(field + " is required")
	case "gt", "gte", "min":
		return usecase.InvalidArgument(fmt.Sprintf("%s must be >= %s", field, fe.Param()))
	default:
		return usecase.InvalidArgument("invalid " + field)
	}
}

// ProductID -> product_id
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(field[i-1] >= 'A' && field[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
