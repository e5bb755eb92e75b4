package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/internal/wizard"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// WizardHandler 时间表创建向导 HTTP 处理器
// 所有路由都要求认证；会话按管理员隔离
type WizardHandler struct {
	wizardSvc service.WizardService
}

// NewWizardHandler 创建 WizardHandler
func NewWizardHandler(wizardSvc service.WizardService) *WizardHandler {
	return &WizardHandler{wizardSvc: wizardSvc}
}

// Start 开启向导会话
// POST /api/v1/wizard
func (h *WizardHandler) Start(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.wizardSvc.Start(c.Request.Context(), adminID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Get 当前会话状态
// GET /api/v1/wizard
func (h *WizardHandler) Get(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.wizardSvc.Get(c.Request.Context(), adminID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// Options 各步骤可选项
// GET /api/v1/wizard/options
func (h *WizardHandler) Options(c *gin.Context) {
	response.OK(c, h.wizardSvc.Options(time.Now()))
}

// SetYear 选择年份
// PUT /api/v1/wizard/year
func (h *WizardHandler) SetYear(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.SetYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.wizardSvc.SetYear(c.Request.Context(), adminID, req.Year)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// SetSession 选择学期
// PUT /api/v1/wizard/session
func (h *WizardHandler) SetSession(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.SetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.wizardSvc.SetSession(c.Request.Context(), adminID, req.Session)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// SetSection 选择班级
// PUT /api/v1/wizard/section
func (h *WizardHandler) SetSection(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.SetSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.wizardSvc.SetSection(c.Request.Context(), adminID, req.Section)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// SetDayOff 标记整日停课
// PUT /api/v1/wizard/day-off
func (h *WizardHandler) SetDayOff(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.SetDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.wizardSvc.SetDayOff(c.Request.Context(), adminID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// SetSlot 更新单个节次
// PUT /api/v1/wizard/slot
func (h *WizardHandler) SetSlot(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.SetSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.wizardSvc.SetSlot(c.Request.Context(), adminID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// Next 前进到下一步
// POST /api/v1/wizard/next
func (h *WizardHandler) Next(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.wizardSvc.Next(c.Request.Context(), adminID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// Back 后退一步
// POST /api/v1/wizard/back
func (h *WizardHandler) Back(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.wizardSvc.Back(c.Request.Context(), adminID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// Submit 提交会话，创建时间表
// POST /api/v1/wizard/submit
func (h *WizardHandler) Submit(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.wizardSvc.Submit(c.Request.Context(), adminID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, result)
}

// Cancel 放弃会话
// DELETE /api/v1/wizard
func (h *WizardHandler) Cancel(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	if err := h.wizardSvc.Cancel(c.Request.Context(), adminID); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// writeError 向导业务错误统一映射
func (h *WizardHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrWizardSessionNotFound):
		response.NotFound(c, 15001, "向导会话不存在或已过期")
	case errors.Is(err, wizard.ErrYearRequired),
		errors.Is(err, wizard.ErrSessionRequired),
		errors.Is(err, wizard.ErrSectionRequired),
		errors.Is(err, wizard.ErrInvalidYear),
		errors.Is(err, wizard.ErrInvalidSession),
		errors.Is(err, wizard.ErrInvalidSection),
		errors.Is(err, wizard.ErrAtFirstStep),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, schedule.ErrUnknownDay),
		errors.Is(err, schedule.ErrSlotOutOfRange):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrWizardNotSubmittable):
		response.BadRequest(c, 15003, err.Error())
	case errors.Is(err, service.ErrTimetableConflict):
		response.Conflict(c, 15004, err.Error())
	default:
		response.InternalError(c)
	}
}
