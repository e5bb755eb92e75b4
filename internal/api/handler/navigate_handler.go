package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// NavigateHandler 校园导航 HTTP 处理器
type NavigateHandler struct {
	navSvc service.NavigateService
}

// NewNavigateHandler 创建 NavigateHandler
func NewNavigateHandler(navSvc service.NavigateService) *NavigateHandler {
	return &NavigateHandler{navSvc: navSvc}
}

// Navigate 规划两地之间的最短路径
// POST /api/v1/navigate
func (h *NavigateHandler) Navigate(c *gin.Context) {
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.navSvc.Navigate(req.From, req.To)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			response.NotFound(c, 17001, err.Error())
		case errors.Is(err, service.ErrNoPath):
			response.NotFound(c, 17002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Locations 可导航地点列表
// GET /api/v1/navigate/locations
func (h *NavigateHandler) Locations(c *gin.Context) {
	response.OK(c, h.navSvc.Locations())
}
