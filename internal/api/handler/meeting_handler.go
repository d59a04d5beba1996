package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/response"
)

// MeetingHandler 宣达信息与范本状态 HTTP 处理器
type MeetingHandler struct {
	meetingSvc service.MeetingService
}

// NewMeetingHandler 创建 MeetingHandler
func NewMeetingHandler(meetingSvc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc}
}

// Options 地点、宣达人下拉选项与默认日期时间
// GET /api/v1/meeting/options
func (h *MeetingHandler) Options(c *gin.Context) {
	result, err := h.meetingSvc.Options(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// TemplateStatus 范本是否存在
// GET /api/v1/template?name=
func (h *MeetingHandler) TemplateStatus(c *gin.Context) {
	result, err := h.meetingSvc.TemplateStatus(c.Request.Context(), c.Query("name"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTemplateName) {
			response.BadRequest(c, 14002, "范本名称无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
