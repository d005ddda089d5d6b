package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// 削除済み商品の明細も残すためLEFT JOIN
func (r *OrderItemGormRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error) {
	lines := []model.OrderLine{}
	if len(orderIDs) == 0 {
		return lines, nil
	}

	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.order_id, oi.product_id, oi.unit_price_cents, oi.quantity, p.name, p.image_url").
		Joins("LEFT JOIN products AS p ON p.id = oi.product_id").
		Where("oi.order_id IN ?", orderIDs).
		Order("oi.order_id ASC, oi.product_id ASC, oi.id ASC").
		Scan(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}
