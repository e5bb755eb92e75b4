package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/pkg/redis"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// HealthHandler 健康检查 HTTP 处理器
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Health 健康检查
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if h.rdb == nil {
		redisStatus = "disabled"
	} else if h.rdb.Ping(ctx) != nil {
		redisStatus = "down"
	}

	response.OK(c, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}
