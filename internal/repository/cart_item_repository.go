package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
)

type CartItemRepository interface {
	// product_id 昇順、商品の現在値をJOINして返す
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error)
	// 同一商品は数量を置き換える（加算しない）
	Upsert(ctx context.Context, cartID int64, productID int64, qty int64) error
	// 行が無ければErrNotFound
	UpdateQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error
	Delete(ctx context.Context, cartID int64, productID int64) error
}
