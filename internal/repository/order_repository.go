package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
)

// 注文は作成と参照のみ。更新系のメソッドは持たない
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// id 降順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
}
