package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the process and its backing stores are up.
// Redis is optional, so its absence is reported but never fails the check.
type HealthHandler struct {
	DB    Pinger
	Redis *redis.Client
}

func NewHealthHandler(db Pinger, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb}
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := echo.Map{"status": "ok"}, http.StatusOK
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			c.Logger().Warnf("health: database: %v", err)
			status["status"], status["database"] = "degraded", "down"
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "up"
		}
	}
	switch {
	case h.Redis == nil:
		status["redis"] = "disabled"
	case h.Redis.Ping(ctx).Err() != nil:
		status["redis"] = "down"
	default:
		status["redis"] = "up"
	}
	return c.JSON(code, status)
}
