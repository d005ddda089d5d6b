package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	"github.com/J-Ferr/ecommerce-api/internal/logger"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
	"github.com/J-Ferr/ecommerce-api/internal/repository/mocks"
	"github.com/J-Ferr/ecommerce-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUsecase_ListProducts_ClampsPaging(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())

	products.On("List", mock.Anything, repo.ProductListQuery{Q: "tee", Limit: 50, Offset: 0}).
		Return([]model.Product{{ID: 1}}, int64(120), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Q: "  tee ", Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 50, out.Limit)
	assert.Equal(t, int64(120), out.Total)
	assert.Equal(t, 3, out.Pages)
}

func TestProductUsecase_ListProducts_OffsetAndPages(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())

	minPrice := int64(100)
	products.On("List", mock.Anything, repo.ProductListQuery{MinPrice: &minPrice, Limit: 10, Offset: 20}).
		Return([]model.Product{}, int64(0), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{MinPrice: &minPrice, Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Pages)
	assert.NotNil(t, out.Data)
}

func TestProductUsecase_ListProducts_LimitBelowOne(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())

	products.On("List", mock.Anything, repo.ProductListQuery{Limit: 1, Offset: 0}).
		Return([]model.Product{}, int64(3), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Limit)
	assert.Equal(t, 3, out.Pages)
}

func TestProductUsecase_GetProduct(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())
	ctx := context.Background()

	_, err := uc.GetProduct(ctx, 0)
	assertAppError(t, err, usecase.KindInvalidArgument, "invalid product id")

	products.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)
	_, err = uc.GetProduct(ctx, 9)
	assertAppError(t, err, usecase.KindNotFound, "product not found")

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, errors.New("db down"))
	_, err = uc.GetProduct(ctx, 10)
	assertAppError(t, err, usecase.KindInternal, "failed to get product")
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, usecase.CreateProductInput{Name: " ", PriceCents: int64Ptr(100)})
	assertAppError(t, err, usecase.KindInvalidArgument, "name is required")

	_, err = uc.CreateProduct(ctx, usecase.CreateProductInput{Name: "Tee"})
	assertAppError(t, err, usecase.KindInvalidArgument, "price_cents is required")

	_, err = uc.CreateProduct(ctx, usecase.CreateProductInput{Name: "Tee", PriceCents: int64Ptr(-1)})
	assertAppError(t, err, usecase.KindInvalidArgument, "price_cents must be >= 0")

	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())

	products.On("Create", mock.Anything, model.Product{Name: "Tee", PriceCents: 0}).
		Return(model.Product{ID: 1, Name: "Tee", PriceCents: 0}, nil)

	p, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Tee", PriceCents: int64Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestProductUsecase_UpdateProduct(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())
	ctx := context.Background()

	_, err := uc.UpdateProduct(ctx, 1, repo.ProductPatch{PriceCents: int64Ptr(-5)})
	assertAppError(t, err, usecase.KindInvalidArgument, "price_cents must be >= 0")

	_, err = uc.UpdateProduct(ctx, 1, repo.ProductPatch{Name: strPtr("")})
	assertAppError(t, err, usecase.KindInvalidArgument, "name must not be empty")

	patch := repo.ProductPatch{PriceCents: int64Ptr(900)}
	products.On("Update", mock.Anything, int64(2), patch).Return(model.Product{}, repo.ErrNotFound)
	_, err = uc.UpdateProduct(ctx, 2, patch)
	assertAppError(t, err, usecase.KindNotFound, "product not found")

	products.On("Update", mock.Anything, int64(1), patch).Return(model.Product{ID: 1, Name: "Tee", PriceCents: 900}, nil)
	p, err := uc.UpdateProduct(ctx, 1, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(900), p.PriceCents)
}

func TestProductUsecase_DeleteProduct(t *testing.T) {
	products := new(mocks.ProductRepository)
	uc := usecase.NewProductUsecase(products, logger.Discard())
	ctx := context.Background()

	products.On("Delete", mock.Anything, int64(1)).Return(nil)
	products.On("Delete", mock.Anything, int64(2)).Return(repo.ErrNotFound)

	assert.NoError(t, uc.DeleteProduct(ctx, 1))
	assertAppError(t, uc.DeleteProduct(ctx, 2), usecase.KindNotFound, "product not found")
	assertAppError(t, uc.DeleteProduct(ctx, -1), usecase.KindInvalidArgument, "invalid product id")
}
