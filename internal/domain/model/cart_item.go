package model

// カートの明細。(cart_id, product_id) で一意
type CartItem struct {
	CartID    int64 `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"product_id"`
	Quantity  int64 `gorm:"not null;check:chk_cart_items_quantity,quantity > 0" json:"quantity"`
}

// 表示用に商品の現在値をJOINした明細。
// 価格はまだスナップショットではない（注文確定までカタログに追従する）
type CartLine struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int64   `json:"quantity"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	ImageURL    *string `json:"image_url"`
}
