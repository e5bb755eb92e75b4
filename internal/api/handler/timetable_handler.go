package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// TimetableHandler 时间表 HTTP 处理器
// 创建入口不在这里：时间表只能通过向导提交产生
type TimetableHandler struct {
	ttSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(ttSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{ttSvc: ttSvc}
}

// List 时间表列表
// GET /api/v1/timetables
func (h *TimetableHandler) List(c *gin.Context) {
	result, err := h.ttSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Get 时间表原始数据
// GET /api/v1/timetables/:id
func (h *TimetableHandler) Get(c *gin.Context) {
	result, err := h.ttSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTimetableNotFound) {
			response.NotFound(c, 14001, "时间表不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// View 渲染后的时间表（含节次表头与午休）
// GET /api/v1/timetables/:id/view
func (h *TimetableHandler) View(c *gin.Context) {
	result, err := h.ttSvc.GetView(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTimetableNotFound) {
			response.NotFound(c, 14001, "时间表不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除时间表
// DELETE /api/v1/timetables/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.ttSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTimetableNotFound) {
			response.NotFound(c, 14001, "时间表不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// TimeSlots 固定节次与午休时间
// GET /api/v1/time-slots
func (h *TimetableHandler) TimeSlots(c *gin.Context) {
	response.OK(c, dto.TimeSlotListResponse{
		TimeSlots: schedule.TimeSlots(),
		Break: dto.BreakResponse{
			Start: schedule.BreakStart,
			End:   schedule.BreakEnd,
			Label: schedule.BreakLabel,
		},
	})
}
