package usecase_test

import (
	"testing"

	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, kind usecase.ErrorKind, msg string) {
	t.Helper()
	ae, ok := usecase.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, msg, ae.Message)
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
