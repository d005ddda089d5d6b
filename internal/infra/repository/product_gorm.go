package repository

import (
	"context"
	"strings"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 削除されていない商品を、検索/価格帯/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	products := []model.Product{}
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// q name/descriptionを対象
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price_cents >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price_cents <= ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	if err := tx.Order("id asc").Offset(q.Offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = 0
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 指定された項目だけ更新し、更新後の行を返す
func (r *ProductGormRepository) Update(ctx context.Context, id int64, patch repo.ProductPatch) (model.Product, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.PriceCents != nil {
		fields["price_cents"] = *patch.PriceCents
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}

	//変更なしなら現在値を返すだけ
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 商品削除（論理削除。過去の注文明細からは参照され続ける）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
