package handler

import (
	"net/http"
	"strconv"

	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/products", h.list)
	api.GET("/products/:id", h.detail)
}

// 数値にできないクエリは無視して既定値を使う
func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page = p
	}

	// limit（default 10）
	limit := usecase.DefaultProductLimit
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = l
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Q:        c.QueryParam("q"),
		MinPrice: optionalInt64(c.QueryParam("min")),
		MaxPrice: optionalInt64(c.QueryParam("max")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func optionalInt64(v string) *int64 {
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &x
}
