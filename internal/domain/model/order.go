package model

import (
	"errors"
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// 作成後は一切更新しない
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64       `gorm:"not null;index" json:"user_id"`
	TotalCents int64       `gorm:"not null" json:"total_cents"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}

var ErrTotalOverflow = errors.New("order total overflows int64")

// 数量×単価の合計（整数演算のみ）
func OrderTotal(lines []CartLine) (int64, error) {
	var total int64
	for _, l := range lines {
		if l.Quantity <= 0 || l.PriceCents < 0 {
			return 0, errors.New("invalid cart line")
		}
		if l.PriceCents > 0 && l.Quantity > math.MaxInt64/l.PriceCents {
			return 0, ErrTotalOverflow
		}
		sub := l.Quantity * l.PriceCents
		if total > math.MaxInt64-sub {
			return 0, ErrTotalOverflow
		}
		total += sub
	}
	return total, nil
}

// 注文確定後にKafkaへ流すイベント
type OrderPlacedEvent struct {
	OrderID    int64            `json:"order_id"`
	UserID     int64            `json:"user_id"`
	TotalCents int64            `json:"total_cents"`
	Items      []OrderItemEvent `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}

type OrderItemEvent struct {
	ProductID      int64 `json:"product_id"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	Quantity       int64 `json:"quantity"`
}
