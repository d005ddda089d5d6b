package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DBの疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *slog.Logger
}

func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

type healthResponse struct {
	OK   bool      `json:"ok"`
	Time time.Time `json:"time"`
}

type dbPingResponse struct {
	DB string `json:"db"`
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)
	e.GET("/db-ping", h.dbPing)
}

func (h *HealthHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{OK: true, Time: time.Now().UTC()})
}

// ドライバのエラー内容は返さない
func (h *HealthHandler) dbPing(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.ErrorContext(ctx, "db ping failed", "error", err)
		return c.JSON(http.StatusInternalServerError, dbPingResponse{DB: "down"})
	}
	return c.JSON(http.StatusOK, dbPingResponse{DB: "up"})
}
