package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
)

const (
	DefaultProductLimit = 10
	maxProductLimit     = 50
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	log         *slog.Logger
}

// DI
// productRepo にはキャッシュ付きのものを渡してよい
func NewProductUsecase(productRepo repo.ProductRepository, log *slog.Logger) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		log:         log,
	}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Page     int
	Limit    int
}

type ProductPage struct {
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
	Pages int             `json:"pages"`
	Data  []model.Product `json:"data"`
}

// page は1以上、limit は1..50に丸める
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxProductLimit {
		limit = maxProductLimit
	}
	return page, limit
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductPage, error) {
	page, limit := normalizePaging(in.Page, in.Limit)

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		u.log.ErrorContext(ctx, "list products failed", "error", err)
		return ProductPage{}, Internal("failed to list products")
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	return ProductPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
		Data:  items,
	}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, InvalidArgument("invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NotFound("product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get product failed", "product_id", productID, "error", err)
		return model.Product{}, Internal("failed to get product")
	}
	return p, nil
}

type CreateProductInput struct {
	Name        string
	Description *string
	PriceCents  *int64
	ImageURL    *string
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, InvalidArgument("name is required")
	}
	if in.PriceCents == nil {
		return model.Product{}, InvalidArgument("price_cents is required")
	}
	if *in.PriceCents < 0 {
		return model.Product{}, InvalidArgument("price_cents must be >= 0")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        name,
		Description: in.Description,
		PriceCents:  *in.PriceCents,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		u.log.ErrorContext(ctx, "create product failed", "error", err)
		return model.Product{}, Internal("failed to create product")
	}
	return p, nil
}

// 部分更新。指定されなかった項目は現在値のまま
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, patch repo.ProductPatch) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, InvalidArgument("invalid product id")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Product{}, InvalidArgument("name must not be empty")
		}
		patch.Name = &name
	}
	if patch.PriceCents != nil && *patch.PriceCents < 0 {
		return model.Product{}, InvalidArgument("price_cents must be >= 0")
	}

	p, err := u.productRepo.Update(ctx, productID, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NotFound("product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "update product failed", "product_id", productID, "error", err)
		return model.Product{}, Internal("failed to update product")
	}
	return p, nil
}

// 論理削除。注文明細の価格スナップショットには影響しない
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return InvalidArgument("invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound("product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "delete product failed", "product_id", productID, "error", err)
		return Internal("failed to delete product")
	}
	return nil
}
