package server

import (
	"github.com/J-Ferr/ecommerce-api/internal/handler"
	"github.com/J-Ferr/ecommerce-api/internal/metrics"
	"github.com/J-Ferr/ecommerce-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Health       *handler.HealthHandler
}

func RegisterRoutes(e *echo.Echo, m *metrics.Metrics, secret string, h Handlers) {
	auth := middleware.AuthJWT(secret)
	admin := middleware.AdminRoleGuard()

	h.Health.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/docs", serveDocs)

	api := e.Group("/api")
	h.Auth.RegisterRoutes(api, auth)
	h.Product.RegisterRoutes(api)
	h.AdminProduct.RegisterRoutes(api, auth, admin)
	h.Cart.RegisterRoutes(api, auth)
	h.Order.RegisterRoutes(api, auth)
}
