package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Limit    int
	Offset   int
}

// 部分更新。nilの項目は現在値のまま
type ProductPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	ImageURL    *string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}
