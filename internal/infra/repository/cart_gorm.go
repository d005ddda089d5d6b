package repository

import (
	"context"
	"fmt"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// carts と cart_items の両方を扱う
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのactiveカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateActiveByUserID(ctx context.Context, userID int64, lock repo.LockMode) (model.Cart, error) {
	db := r.db.WithContext(ctx)

	cart, err := r.findActive(db, userID, lock)
	if err == nil {
		return cart, nil
	}
	if !isNotFound(err) {
		return model.Cart{}, err
	}

	// 無ければ作る。同時に作られた場合は部分ユニークインデックスで弾かれて0件
	newCart := model.Cart{
		UserID: userID,
		Status: model.CartStatusActive,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "user_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "status = 'active'"}}},
		DoNothing:   true,
	}).Create(&newCart)
	if res.Error != nil {
		return model.Cart{}, res.Error
	}
	if res.RowsAffected == 1 {
		return newCart, nil
	}

	//競合したので作られた方を読み直す
	cart, err = r.findActive(db, userID, lock)
	if err != nil {
		return model.Cart{}, fmt.Errorf("reload active cart: %w", err)
	}
	return cart, nil
}

func (r *CartGormRepository) findActive(db *gorm.DB, userID int64, lock repo.LockMode) (model.Cart, error) {
	var cart model.Cart
	err := withLock(db, lock).
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
		Take(&cart).Error
	return cart, err
}

func withLock(db *gorm.DB, lock repo.LockMode) *gorm.DB {
	switch lock {
	case repo.LockShare:
		return db.Clauses(clause.Locking{Strength: "SHARE"})
	case repo.LockForUpdate:
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	default:
		return db
	}
}

// carts.statusを更新（from以外からは遷移しない）
func (r *CartGormRepository) UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartID, from).
		Update("status", to)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート明細を商品の現在値と一緒に取得
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	lines := []model.CartLine{}

	err := r.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.product_id, ci.quantity, p.name, p.description, p.price_cents, p.image_url").
		Joins("JOIN products AS p ON p.id = ci.product_id AND p.deleted_at IS NULL").
		Where("ci.cart_id = ?", cartID).
		Order("ci.product_id ASC").
		Scan(&lines).Error
	if err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// 同一商品は数量を置き換え
func (r *CartGormRepository) Upsert(ctx context.Context, cartID int64, productID int64, qty int64) error {
	item := model.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&item).Error
}

// 明細の数量を更新
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
