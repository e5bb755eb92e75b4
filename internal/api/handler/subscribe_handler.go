package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// SubscribeHandler 集合快照订阅 HTTP 处理器（SSE）
type SubscribeHandler struct {
	hub *service.SnapshotHub
}

// NewSubscribeHandler 创建 SubscribeHandler
func NewSubscribeHandler(hub *service.SnapshotHub) *SubscribeHandler {
	return &SubscribeHandler{hub: hub}
}

// Subscribe 订阅集合快照流
// GET /api/v1/subscribe/:collection
// 以 Server-Sent Events 推送：订阅时先推当前完整快照，
// 之后每次集合写操作推一次新快照；连接断开自动退订
func (h *SubscribeHandler) Subscribe(c *gin.Context) {
	collection := c.Param("collection")

	ch, cancel, err := h.hub.Subscribe(c.Request.Context(), collection)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCollection) {
			response.NotFound(c, 18001, "未知的集合名称")
			return
		}
		response.InternalError(c)
		return
	}
	defer cancel()

	// SSE 是长连接，不能受服务器级 WriteTimeout 约束；
	// 这里解除连接级写超时，改为每次推送单独设置写入期限
	rc := http.NewResponseController(c.Writer)
	rc.SetWriteDeadline(time.Time{})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		snap, ok := <-ch
		if !ok {
			return false
		}
		rc.SetWriteDeadline(time.Now().Add(10 * time.Second))
		c.SSEvent("snapshot", snap)
		return true
	})
}
