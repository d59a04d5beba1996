package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/response"
)

// AttendanceHandler 出席记录生成与导出 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	exportSvc     service.ExportService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, exportSvc service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, exportSvc: exportSvc}
}

// Generate 依范本生成 Word 出席记录并下载
// POST /api/v1/attendance/generate
func (h *AttendanceHandler) Generate(c *gin.Context) {
	h.serve(c, h.attendanceSvc.Generate)
}

// Export 导出 Excel 出席名单
// POST /api/v1/attendance/export
func (h *AttendanceHandler) Export(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportAttendance)
}

type attendanceFunc func(ctx context.Context, sessionID string, req *dto.GenerateAttendanceRequest) (*dto.AttendanceFile, error)

func (h *AttendanceHandler) serve(c *gin.Context, produce attendanceFunc) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.GenerateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := produce(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 14001, "找不到范本，请确认范本文件已放置")
	case errors.Is(err, service.ErrInvalidTemplateName):
		response.BadRequest(c, 14002, "范本名称无效")
	case errors.Is(err, service.ErrTemplateMalformed):
		response.UnprocessableEntity(c, 14003, "范本格式异常", err.Error())
	case errors.Is(err, service.ErrDateRequired):
		response.BadRequest(c, 13001, "请输入日期 (YYYY/MM/DD)")
	case errors.Is(err, service.ErrTimeRangeInvalid):
		response.BadRequest(c, 13002, "时间格式请用区间，例如 08:00 ~ 08:15")
	case errors.Is(err, service.ErrNoAttendees):
		response.BadRequest(c, 13003, "请至少勾选一位人员")
	case errors.Is(err, service.ErrUnknownSpokesman):
		response.BadRequest(c, 12003, "未知的宣达人")
	case errors.Is(err, service.ErrSessionNotFound):
		response.Unauthorized(c, 10002, "会话已结束，请重新登录")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 50000, "生成 Excel 文件失败", err.Error())
	default:
		response.ErrorWithDetails(c, http.StatusInternalServerError, 50000, "产生出席记录失败", err.Error())
	}
}
