package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	"github.com/J-Ferr/ecommerce-api/internal/logger"
	"github.com/J-Ferr/ecommerce-api/internal/metrics"
	"github.com/J-Ferr/ecommerce-api/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type mwErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type mwOKResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func mustMakeJWT(t *testing.T, key string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims(sub interface{}, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r
}

// ctxの値をそのまま返すハンドラ
func echoContextHandler(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserIDKey).(int64)
	role, _ := c.Get(middleware.CtxUserRoleKey).(model.Role)
	return c.JSON(http.StatusOK, mwOKResponse{UserID: userID, Role: string(role)})
}

func newProtected(mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", echoContextHandler, mws...)
	return e
}

func TestAuthJWT_Unauthorized(t *testing.T) {
	cases := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{"no header", func(t *testing.T) string { return "" }},
		{"bad scheme", func(t *testing.T) string { return "Token abc.def.ghi" }},
		{"empty token", func(t *testing.T) string { return "Bearer " }},
		{"garbage token", func(t *testing.T) string { return "Bearer not-a-jwt" }},
		{"bad signature", func(t *testing.T) string {
			return "Bearer " + mustMakeJWT(t, "wrong-secret", validClaims(1, "user"), jwt.SigningMethodHS256)
		}},
		{"wrong alg", func(t *testing.T) string {
			return "Bearer " + mustMakeJWT(t, secret, validClaims(1, "user"), jwt.SigningMethodHS512)
		}},
		{"expired", func(t *testing.T) string {
			claims := validClaims(1, "user")
			claims["exp"] = time.Now().Add(-time.Minute).Unix()
			return "Bearer " + mustMakeJWT(t, secret, claims, jwt.SigningMethodHS256)
		}},
		{"unknown role", func(t *testing.T) string {
			return "Bearer " + mustMakeJWT(t, secret, validClaims(1, "root"), jwt.SigningMethodHS256)
		}},
		{"fractional sub", func(t *testing.T) string {
			return "Bearer " + mustMakeJWT(t, secret, validClaims(1.5, "user"), jwt.SigningMethodHS256)
		}},
		{"missing sub", func(t *testing.T) string {
			claims := validClaims(1, "user")
			delete(claims, "sub")
			return "Bearer " + mustMakeJWT(t, secret, claims, jwt.SigningMethodHS256)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newProtected(middleware.AuthJWT(secret))

			rec := runRequest(t, e, tc.header(t))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			body := decodeMWError(t, rec)
			assert.Equal(t, "unauthorized", body.Error)
			assert.Equal(t, "UNAUTHENTICATED", body.Code)
		})
	}
}

func TestAuthJWT_Success_SetsContext(t *testing.T) {
	e := newProtected(middleware.AuthJWT(secret))

	raw := mustMakeJWT(t, secret, validClaims(123, "admin"), jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(123), body.UserID)
	assert.Equal(t, "admin", body.Role)
}

func TestAuthJWT_StringSub(t *testing.T) {
	e := newProtected(middleware.AuthJWT(secret))

	raw := mustMakeJWT(t, secret, validClaims("42", "user"), jwt.SigningMethodHS256)
	rec := runRequest(t, e, "bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(42), body.UserID)
}

func TestAdminRoleGuard(t *testing.T) {
	e := newProtected(middleware.AuthJWT(secret), middleware.AdminRoleGuard())

	userToken := mustMakeJWT(t, secret, validClaims(1, "user"), jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeMWError(t, rec)
	assert.Equal(t, "admin only", body.Error)
	assert.Equal(t, "PERMISSION_DENIED", body.Code)

	adminToken := mustMakeJWT(t, secret, validClaims(2, "admin"), jwt.SigningMethodHS256)
	rec = runRequest(t, e, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// AuthJWT無しでGuardだけ => 401
func TestAdminRoleGuard_MissingContext(t *testing.T) {
	e := newProtected(middleware.AdminRoleGuard())

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger_RequestID(t *testing.T) {
	e := newProtected(middleware.RequestLogger(logger.Discard()))

	//無ければ発番
	rec := runRequest(t, e, "")
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	//あればそのまま返す
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(middleware.HeaderRequestID))
}

func TestMetrics_CountsByRoute(t *testing.T) {
	m := metrics.New()
	e := newProtected(middleware.Metrics(m), middleware.AuthJWT(secret))

	runRequest(t, e, "")
	runRequest(t, e, "")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/protected", "401")))
}
