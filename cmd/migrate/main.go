package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/J-Ferr/ecommerce-api/internal/config"
	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	"github.com/J-Ferr/ecommerce-api/internal/infra/db"
	infraRepo "github.com/J-Ferr/ecommerce-api/internal/infra/repository"
	"github.com/J-Ferr/ecommerce-api/internal/logger"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"
	"github.com/J-Ferr/ecommerce-api/internal/usecase"
	"github.com/J-Ferr/ecommerce-api/internal/validator"

	"github.com/joho/godotenv"
)

// 使い方: migrate [-seed] [envfile]
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	seed := flag.Bool("seed", false, "insert sample products when the catalog is empty")
	flag.Parse()

	envPath := ".env"
	if flag.NArg() > 0 {
		envPath = flag.Arg(0)
	}
	if err := godotenv.Load(envPath); err != nil && flag.NArg() > 0 {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()

	gormDB, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Info("schema migrated")

	if *seed {
		n, err := seedProducts(ctx, infraRepo.NewProductGormRepository(gormDB))
		if err != nil {
			return err
		}
		log.Info("products seeded", "count", n)
	}

	//ADMIN_EMAIL / ADMIN_PASSWORD があれば管理者を作る
	adminEmail, adminPassword := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		authUC := usecase.NewAuthUsecase(cfg, infraRepo.NewUserGormRepository(gormDB), validator.New(), log)
		created, err := authUC.CreateAdmin(ctx, adminEmail, adminPassword)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Info("admin user", "email", adminEmail, "created", created)
	}
	return nil
}

func strPtr(s string) *string { return &s }

var sampleProducts = []model.Product{
	{Name: "Classic T-Shirt", Description: strPtr("100% cotton crew neck"), PriceCents: 1999},
	{Name: "Canvas Sneakers", Description: strPtr("Low-top canvas sneakers"), PriceCents: 4999},
	{Name: "Denim Jacket", Description: strPtr("Stonewashed denim jacket"), PriceCents: 7999},
	{Name: "Baseball Cap", Description: strPtr("Adjustable cotton cap"), PriceCents: 1499},
	{Name: "Leather Wallet", Description: strPtr("Bifold genuine leather wallet"), PriceCents: 2999},
	{Name: "Water Bottle", Description: strPtr("Insulated stainless steel, 750ml"), PriceCents: 2499},
}

// カタログが空のときだけ投入する（再実行しても重複しない）
func seedProducts(ctx context.Context, products repo.ProductRepository) (int, error) {
	_, total, err := products.List(ctx, repo.ProductListQuery{Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if total > 0 {
		return 0, nil
	}

	for _, p := range sampleProducts {
		if _, err := products.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return len(sampleProducts), nil
}
