package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// RoomHandler 教室名录 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Create 新增教室
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.roomSvc.Create(c.Request.Context(), &req, adminID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List 教室列表 / 搜索
// GET /api/v1/rooms?q=<query>
func (h *RoomHandler) List(c *gin.Context) {
	var req dto.RoomSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.roomSvc.Search(c.Request.Context(), req.Query)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Get 教室详情
// GET /api/v1/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	result, err := h.roomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 13001, "教室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除教室
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.roomSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 13001, "教室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
