package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/J-Ferr/ecommerce-api/internal/config"
	"github.com/J-Ferr/ecommerce-api/internal/handler"
	"github.com/J-Ferr/ecommerce-api/internal/infra/cache"
	"github.com/J-Ferr/ecommerce-api/internal/infra/db"
	"github.com/J-Ferr/ecommerce-api/internal/infra/event"
	infraRepo "github.com/J-Ferr/ecommerce-api/internal/infra/repository"
	"github.com/J-Ferr/ecommerce-api/internal/logger"
	"github.com/J-Ferr/ecommerce-api/internal/metrics"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
	"github.com/J-Ferr/ecommerce-api/internal/server"
	"github.com/J-Ferr/ecommerce-api/internal/usecase"
	"github.com/J-Ferr/ecommerce-api/internal/validator"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// イベント送信先（終了時にClose）
type publisher interface {
	usecase.OrderEventPublisher
	io.Closer
}

func run() error {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Error("close db failed", "error", err)
		}
	}()

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		log.Info("database migrated")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	var productRepo repo.ProductRepository = infraRepo.NewProductGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Redisがあれば商品キャッシュを挟む
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		productRepo = cache.NewCachedProductRepository(productRepo, rdb, cfg.ProductCacheTTL, log)
		log.Info("product cache enabled", "addr", cfg.RedisAddr)
	}

	//Kafkaが無ければイベントは捨てる
	var pub publisher = event.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, log)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Error("close publisher failed", "error", err)
		}
	}()

	m := metrics.New()
	v := validator.New()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, v, log)
	productUC := usecase.NewProductUsecase(productRepo, log)
	cartUC := usecase.NewCartUsecase(txm, log)
	orderUC := usecase.NewOrderUsecase(txm, pub, m, log)

	//Handler生成
	e := server.New(log, m, v, cfg.JWTSecret, server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Health:       handler.NewHealthHandler(db.NewPinger(gormDB), log),
	})

	//Server起動（SIGINT/SIGTERMで停止）
	return server.Run(ctx, e, ":"+cfg.Port, log)
}

func closeRedis(rdb *redis.Client, log *slog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error("close redis failed", "error", err)
	}
}
