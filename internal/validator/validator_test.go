package validator

import (
	"context"
	"testing"

	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, kind usecase.ErrorKind, msg string) {
	t.Helper()
	ae, ok := usecase.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, msg, ae.Message)
}

func TestValidateRegister(t *testing.T) {
	v := New()
	ctx := context.Background()

	assert.NoError(t, v.ValidateRegister(ctx, "a@example.com", "secret"))

	requireKind(t, v.ValidateRegister(ctx, "not-an-email", "secret"),
		usecase.KindInvalidArgument, "valid email is required")
	requireKind(t, v.ValidateRegister(ctx, "", "secret"),
		usecase.KindInvalidArgument, "valid email is required")
	requireKind(t, v.ValidateRegister(ctx, "a@example.com", "12345"),
		usecase.KindInvalidArgument, "password must be at least 6 chars")
}

func TestValidateLogin(t *testing.T) {
	v := New()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "a@example.com", "x"))
	requireKind(t, v.ValidateLogin(ctx, "a@example.com", ""),
		usecase.KindInvalidArgument, "email and password required")
}

type cartBody struct {
	ProductID int64 `validate:"required"`
	Quantity  int64 `validate:"gte=1"`
}

func TestValidate_Struct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&cartBody{ProductID: 1, Quantity: 2}))
	requireKind(t, v.Validate(&cartBody{Quantity: 2}), usecase.KindInvalidArgument, "product_id is required")
	requireKind(t, v.Validate(&cartBody{ProductID: 1}), usecase.KindInvalidArgument, "quantity must be >= 1")
}

func TestJSONName(t *testing.T) {
	assert.Equal(t, "product_id", jsonName("ProductID"))
	assert.Equal(t, "price_cents", jsonName("PriceCents"))
	assert.Equal(t, "name", jsonName("Name"))
}
