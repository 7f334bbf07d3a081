package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports liveness plus the state of both backing stores.
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	out := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	out["mysql"] = h.mysqlState(ctx)
	out["redis"] = h.redisState(ctx)
	if out["mysql"] != "ok" || out["redis"] != "ok" {
		out["status"] = "degraded"
	}
	return c.JSON(http.StatusOK, out)
}

func (h *HealthHandler) mysqlState(ctx context.Context) string {
	if h.db == nil {
		return "unconfigured"
	}
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "down"
	}
	return "ok"
}

func (h *HealthHandler) redisState(ctx context.Context) string {
	if h.rdb == nil {
		return "unconfigured"
	}
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		return "down"
	}
	return "ok"
}
