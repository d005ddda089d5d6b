package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
)

// 注文確定イベントの送信先（Kafka or no-op）
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error
}

// 注文のメトリクス
type OrderRecorder interface {
	OrderPlaced()
	OrderFailed(kind string)
	OrderEventFailed()
}

const publishTimeout = 3 * time.Second

type OrderUsecase struct {
	tx        repo.TransactionManager
	publisher OrderEventPublisher
	recorder  OrderRecorder
	log       *slog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, publisher OrderEventPublisher, recorder OrderRecorder, log *slog.Logger) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		publisher: publisher,
		recorder:  recorder,
		log:       log,
	}
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	TotalCents int64             `json:"total_cents"`
	Status     model.OrderStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []model.OrderLine `json:"items"`
}

// PlaceOrder はactiveカートを注文に変換する。
// カート行をFOR UPDATEでロックし、注文・明細の作成とカートのconvertedへの遷移を1つのTxで行う。
// 同じカートへの同時確定は後着がロック解放後に空カートを見てFailedPreconditionになる
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized
	}

	var (
		created model.Order
		lines   []model.CartLine
		items   []model.OrderItem
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateActiveByUserID(ctx, userID, repo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("lock active cart: %w", err)
		}

		//現在価格つきで明細を取得
		lines, err = r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		if len(lines) == 0 {
			return FailedPrecondition("cart is empty")
		}

		total, err := model.OrderTotal(lines)
		if err != nil {
			return fmt.Errorf("order total: %w", err)
		}

		//注文作成
		created = model.Order{
			UserID:     userID,
			TotalCents: total,
			Status:     model.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &created); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		//価格をスナップショットして明細作成
		items = make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, model.OrderItem{
				ProductID:      l.ProductID,
				UnitPriceCents: l.PriceCents,
				Quantity:       l.Quantity,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, created.ID, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		//カートは一度だけconvertedになる
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusActive, model.CartStatusConverted); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("cart %d is no longer active", cart.ID)
			}
			return fmt.Errorf("convert cart: %w", err)
		}
		return nil
	})

	if err != nil {
		if ae, ok := AsAppError(err); ok {
			u.recorder.OrderFailed(string(ae.Kind))
			return OrderOutput{}, err
		}
		u.recorder.OrderFailed(string(KindInternal))
		u.log.ErrorContext(ctx, "place order failed", "user_id", userID, "error", err)
		return OrderOutput{}, Internal("failed to place order")
	}

	u.recorder.OrderPlaced()
	u.log.InfoContext(ctx, "order placed", "user_id", userID, "order_id", created.ID, "total_cents", created.TotalCents)
	u.publishPlaced(ctx, created, items)

	return toOrderOutput(created, orderLinesFromCart(created.ID, lines)), nil
}

// イベント送信の失敗は注文結果に影響させない
func (u *OrderUsecase) publishPlaced(ctx context.Context, o model.Order, items []model.OrderItem) {
	ev := model.OrderPlacedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Items:      make([]model.OrderItemEvent, 0, len(items)),
		CreatedAt:  o.CreatedAt,
	}
	for _, it := range items {
		ev.Items = append(ev.Items, model.OrderItemEvent{
			ProductID:      it.ProductID,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		})
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := u.publisher.PublishOrderPlaced(pubCtx, ev); err != nil {
		u.recorder.OrderEventFailed()
		u.log.WarnContext(ctx, "publish order event failed", "order_id", o.ID, "error", err)
	}
}

// ListMyOrders は新しい順。明細は product_id 昇順
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, errUnauthorized
	}

	outs := []OrderOutput{}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		lines, err := r.OrderItems().ListByOrderIDs(ctx, ids)
		if err != nil {
			return err
		}

		byOrder := make(map[int64][]model.OrderLine, len(orders))
		for _, l := range lines {
			byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, byOrder[o.ID]))
		}
		return nil
	})

	if err != nil {
		u.log.ErrorContext(ctx, "list orders failed", "user_id", userID, "error", err)
		return []OrderOutput{}, Internal("failed to list orders")
	}
	return outs, nil
}

// 他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized
	}
	if orderID <= 0 {
		return OrderOutput{}, InvalidArgument("invalid order id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("order not found")
		}
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return NotFound("order not found")
		}

		lines, err := r.OrderItems().ListByOrderIDs(ctx, []int64{orderID})
		if err != nil {
			return err
		}
		out = toOrderOutput(o, lines)
		return nil
	})

	if err != nil {
		if _, ok := AsAppError(err); ok {
			return OrderOutput{}, err
		}
		u.log.ErrorContext(ctx, "get order failed", "user_id", userID, "order_id", orderID, "error", err)
		return OrderOutput{}, Internal("failed to get order")
	}
	return out, nil
}

func orderLinesFromCart(orderID int64, lines []model.CartLine) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		name := l.Name
		out = append(out, model.OrderLine{
			OrderID:        orderID,
			ProductID:      l.ProductID,
			UnitPriceCents: l.PriceCents,
			Quantity:       l.Quantity,
			Name:           &name,
			ImageURL:       l.ImageURL,
		})
	}
	return out
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	if lines == nil {
		lines = []model.OrderLine{}
	}
	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		Items:      lines,
	}
}
