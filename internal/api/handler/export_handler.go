package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// ExportHandler 时间表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 导出时间表为 Excel
// GET /api/v1/timetables/:id/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportICS 导出时间表为 iCalendar
// GET /api/v1/timetables/:id/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 14001, "时间表不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
