package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	prodDB *gorm.DB
	demoDB *gorm.DB
	rdb    *redis.Client
}

func NewHealthHandler(prodDB, demoDB *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{prodDB: prodDB, demoDB: demoDB, rdb: rdb}
}

// Check pings every backing store. Redis is best-effort infrastructure, so
// a redis outage degrades the report without failing the check.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	report := gin.H{"status": "ok"}
	healthy := true

	report["production"] = pingDB(ctx, h.prodDB, &healthy)
	report["demo"] = pingDB(ctx, h.demoDB, &healthy)

	switch {
	case h.rdb == nil:
		report["redis"] = "disabled"
	case h.rdb.Ping(ctx).Err() != nil:
		report["redis"] = "down"
	default:
		report["redis"] = "up"
	}

	if !healthy {
		report["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

func pingDB(ctx context.Context, db *gorm.DB, healthy *bool) string {
	if db == nil {
		*healthy = false
		return "down"
	}
	sqlDB, err := db.DB()
	if err != nil {
		*healthy = false
		return "down"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		*healthy = false
		return "down"
	}
	return "up"
}
