package repository

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
)

// activeカート行に取るロック
type LockMode int

const (
	LockNone LockMode = iota
	// 明細の更新。確定処理とは排他、明細更新同士は並行可
	LockShare
	// 注文確定
	LockForUpdate
)

type CartRepository interface {
	// activeカートを取得し、無ければ作成する
	GetOrCreateActiveByUserID(ctx context.Context, userID int64, lock LockMode) (model.Cart, error)
	// from -> to の遷移。現在のstatusがfromでなければErrNotFound
	UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error
}
