package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
// 更新系はactiveカート行にFOR SHAREを取った短いTxで行い、注文確定（FOR UPDATE）と直列化する
type CartUsecase struct {
	tx  repo.TransactionManager
	log *slog.Logger
}

func NewCartUsecase(tx repo.TransactionManager, log *slog.Logger) *CartUsecase {
	return &CartUsecase{tx: tx, log: log}
}

// items は product_id 昇順
type CartOutput struct {
	CartID int64            `json:"cart_id"`
	Items  []model.CartLine `json:"items"`
}

// GetCart はカート取得（無ければactiveを作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, errUnauthorized
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActiveByUserID(ctx, userID, repo.LockNone)
		if err != nil {
			return err
		}
		out, err = buildCartOutput(ctx, r, cart.ID)
		return err
	})
	if err != nil {
		return CartOutput{}, u.fail(ctx, userID, "get cart", err)
	}
	return out, nil
}

// SetItem は数量を指定値にする（既にある商品は置き換え、加算しない）
func (u *CartUsecase) SetItem(ctx context.Context, userID int64, productID int64, qty int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, errUnauthorized
	}
	if err := validateCartInput(productID, qty); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActiveByUserID(ctx, userID, repo.LockShare)
		if err != nil {
			return err
		}

		//商品の存在チェック（削除済みは不可）
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("product not found")
			}
			return err
		}

		if err := r.CartItems().Upsert(ctx, cart.ID, productID, qty); err != nil {
			return err
		}
		out, err = buildCartOutput(ctx, r, cart.ID)
		return err
	})
	if err != nil {
		return CartOutput{}, u.fail(ctx, userID, "set cart item", err)
	}
	return out, nil
}

// 既存明細の数量変更。明細が無ければ作らずにNotFound
func (u *CartUsecase) UpdateItemQuantity(ctx context.Context, userID int64, productID int64, qty int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, errUnauthorized
	}
	if err := validateCartInput(productID, qty); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActiveByUserID(ctx, userID, repo.LockShare)
		if err != nil {
			return err
		}

		if err := r.CartItems().UpdateQuantity(ctx, cart.ID, productID, qty); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("item not in cart")
			}
			return err
		}
		out, err = buildCartOutput(ctx, r, cart.ID)
		return err
	})
	if err != nil {
		return CartOutput{}, u.fail(ctx, userID, "update cart item", err)
	}
	return out, nil
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, errUnauthorized
	}
	if productID <= 0 {
		return CartOutput{}, InvalidArgument("invalid product id")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActiveByUserID(ctx, userID, repo.LockShare)
		if err != nil {
			return err
		}

		if err := r.CartItems().Delete(ctx, cart.ID, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("item not in cart")
			}
			return err
		}
		out, err = buildCartOutput(ctx, r, cart.ID)
		return err
	})
	if err != nil {
		return CartOutput{}, u.fail(ctx, userID, "remove cart item", err)
	}
	return out, nil
}

func validateCartInput(productID int64, qty int64) error {
	if productID <= 0 {
		return InvalidArgument("invalid product id")
	}
	if qty <= 0 {
		return InvalidArgument("quantity must be a positive integer")
	}
	return nil
}

func buildCartOutput(ctx context.Context, r repo.TxRepos, cartID int64) (CartOutput, error) {
	items, err := r.CartItems().ListByCartID(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}
	return CartOutput{CartID: cartID, Items: items}, nil
}

// AppErrorはそのまま、それ以外はログに残して500
func (u *CartUsecase) fail(ctx context.Context, userID int64, op string, err error) error {
	if _, ok := AsAppError(err); ok {
		return err
	}
	u.log.ErrorContext(ctx, op+" failed", "user_id", userID, "error", err)
	return Internal("failed to " + op)
}
