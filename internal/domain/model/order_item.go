package model

// 注文時点の価格を凍結した明細。作成後は更新も削除もしない
type OrderItem struct {
	ID             int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64 `gorm:"not null;index" json:"order_id"`
	ProductID      int64 `gorm:"not null;index" json:"product_id"`
	UnitPriceCents int64 `gorm:"not null" json:"unit_price_cents"`
	Quantity       int64 `gorm:"not null" json:"quantity"`
}

// 一覧表示用。名前と画像だけは現在の商品情報を使う（価格は再計算しない）
type OrderLine struct {
	OrderID        int64   `json:"order_id"`
	ProductID      int64   `json:"product_id"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       int64   `json:"quantity"`
	Name           *string `json:"name"`
	ImageURL       *string `json:"image_url"`
}
