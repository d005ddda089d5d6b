package model

import (
	"time"

	"gorm.io/gorm"
)

// 価格は最小通貨単位（cents）の整数で持つ
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null;check:chk_products_price_cents,price_cents >= 0" json:"price_cents"`
	ImageURL    *string        `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
