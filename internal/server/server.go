package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/handler"
	"github.com/J-Ferr/ecommerce-api/internal/metrics"
	"github.com/J-Ferr/ecommerce-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// New はミドルウェアとルートを登録済みのechoを返す
func New(log *slog.Logger, m *metrics.Metrics, v echo.Validator, secret string, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)

	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics(m))
	//panicも500としてログ・メトリクスに載せるため内側に置く
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("1M"))

	RegisterRoutes(e, m, secret, h)
	return e
}

// Run はctxがキャンセルされるまでサーバーを動かし、その後graceful shutdownする
func Run(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("http server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
