package server

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPISpec []byte

// GET /docs はOpenAPI定義をそのまま返す
func serveDocs(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openAPISpec)
}
