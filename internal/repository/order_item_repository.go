package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	// order_id, product_id の昇順
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error)
}
