// Package mocks はusecaseのunitテスト用のtestifyモック
package mocks

import (
	"context"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// TxManager は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManager struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxRepos struct {
	CartRepo      *CartRepository
	CartItemRepo  *CartItemRepository
	ProductRepo   *ProductRepository
	OrderRepo     *OrderRepository
	OrderItemRepo *OrderItemRepository
}

func (r *TxRepos) Carts() repo.CartRepository           { return r.CartRepo }
func (r *TxRepos) CartItems() repo.CartItemRepository   { return r.CartItemRepo }
func (r *TxRepos) Products() repo.ProductRepository     { return r.ProductRepo }
func (r *TxRepos) Orders() repo.OrderRepository         { return r.OrderRepo }
func (r *TxRepos) OrderItems() repo.OrderItemRepository { return r.OrderItemRepo }

// 全部のモックを持ったTxManagerを返す
func NewTxManager() (*TxManager, *TxRepos) {
	repos := &TxRepos{
		CartRepo:      new(CartRepository),
		CartItemRepo:  new(CartItemRepository),
		ProductRepo:   new(ProductRepository),
		OrderRepo:     new(OrderRepository),
		OrderItemRepo: new(OrderItemRepository),
	}
	tm := &TxManager{Repos: repos}
	tm.On("WithinTx", mock.Anything).Return(nil)
	return tm, repos
}

// =====================
// Cart
// =====================

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetOrCreateActiveByUserID(ctx context.Context, userID int64, lock repo.LockMode) (model.Cart, error) {
	args := m.Called(ctx, userID, lock)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepository) UpdateStatus(ctx context.Context, cartID int64, from model.CartStatus, to model.CartStatus) error {
	args := m.Called(ctx, cartID, from, to)
	return args.Error(0)
}

type CartItemRepository struct {
	mock.Mock
}

func (m *CartItemRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartItemRepository) Upsert(ctx context.Context, cartID int64, productID int64, qty int64) error {
	args := m.Called(ctx, cartID, productID, qty)
	return args.Error(0)
}

func (m *CartItemRepository) UpdateQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error {
	args := m.Called(ctx, cartID, productID, qty)
	return args.Error(0)
}

func (m *CartItemRepository) Delete(ctx context.Context, cartID int64, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

// =====================
// Product
// =====================

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) Update(ctx context.Context, id int64, patch repo.ProductPatch) (model.Product, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Order
// =====================

type OrderRepository struct {
	mock.Mock
}

// Runで order.ID などを埋めてよい
func (m *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

type OrderItemRepository struct {
	mock.Mock
}

func (m *OrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderIDs)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

// =====================
// User
// =====================

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

// =====================
// Order events / metrics
// =====================

type OrderEventPublisher struct {
	mock.Mock
}

func (m *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type OrderRecorder struct {
	mock.Mock
}

func (m *OrderRecorder) OrderPlaced()            { m.Called() }
func (m *OrderRecorder) OrderFailed(kind string) { m.Called(kind) }
func (m *OrderRecorder) OrderEventFailed()       { m.Called() }

var (
	_ repo.TransactionManager  = (*TxManager)(nil)
	_ repo.TxRepos             = (*TxRepos)(nil)
	_ repo.CartRepository      = (*CartRepository)(nil)
	_ repo.CartItemRepository  = (*CartItemRepository)(nil)
	_ repo.ProductRepository   = (*ProductRepository)(nil)
	_ repo.OrderRepository     = (*OrderRepository)(nil)
	_ repo.OrderItemRepository = (*OrderItemRepository)(nil)
	_ repo.UserRepository      = (*UserRepository)(nil)
)
