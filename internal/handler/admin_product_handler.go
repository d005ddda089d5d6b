package handler

import (
	"net/http"
	"strconv"

	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者向けの商品API
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents" validate:"required,gte=0"`
	ImageURL    *string `json:"image_url"`
}

// 指定したフィールドだけ更新
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"image_url"`
}

func (h *AdminProductHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc, admin echo.MiddlewareFunc) {
	//公開の GET /products と同じパスなのでグループは作らずルート単位で付ける
	api.POST("/products", h.create, auth, admin)
	api.PATCH("/products/:id", h.update, auth, admin)
	api.DELETE("/products/:id", h.delete, auth, admin)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, repo.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
