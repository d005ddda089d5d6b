package db

import (
	"context"
	"fmt"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/config"
	"github.com/J-Ferr/ecommerce-api/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 呼び出し側がCloseまで責任を持つ
func Connect(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return gormDB, nil
}

// Migrate はテーブルとインデックスを作る
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	//activeカートはユーザーごとに1つ
	if err := gormDB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_carts_user_active ON carts (user_id) WHERE status = 'active'",
	).Error; err != nil {
		return fmt.Errorf("create active cart index: %w", err)
	}
	return nil
}

// Close はコネクションプールを閉じる
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Pinger は /db-ping 用
type Pinger struct {
	db *gorm.DB
}

func NewPinger(gormDB *gorm.DB) *Pinger {
	return &Pinger{db: gormDB}
}

func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
