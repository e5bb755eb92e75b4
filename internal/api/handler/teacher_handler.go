package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// TeacherHandler 教师名录 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// Create 新增教师
// POST /api/v1/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Create(c.Request.Context(), &req, adminID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List 教师列表 / 搜索
// GET /api/v1/teachers?q=<query>
func (h *TeacherHandler) List(c *gin.Context) {
	var req dto.TeacherSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Search(c.Request.Context(), req.Query)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Get 教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	result, err := h.teacherSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 12001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除教师
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teacherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 12001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
