package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/response"
)

// RosterHandler 人员名单与勾选 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// List 名单（可筛选）
// GET /api/v1/roster?query=&only_b=&only_f=&spokesman=
func (h *RosterHandler) List(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var filter dto.RosterFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.rosterSvc.List(c.Request.Context(), sessionID, filter)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, result)
}

// Toggle 勾选或取消单一人员
// PUT /api/v1/roster/selection/:id
func (h *RosterHandler) Toggle(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	req.EmployeeID = c.Param("id")

	result, err := h.rosterSvc.Toggle(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, result)
}

// Bulk 批量勾选：全选可见 / 取消可见 / 全部取消
// POST /api/v1/roster/selection/bulk
func (h *RosterHandler) Bulk(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.BulkSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.rosterSvc.Bulk(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, result)
}

func handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownEmployee):
		response.NotFound(c, 12001, "名单中没有此工号")
	case errors.Is(err, service.ErrSpokesmanNotSelectable):
		response.BadRequest(c, 12002, "宣达人不可选为出席人员")
	case errors.Is(err, service.ErrUnknownSpokesman):
		response.BadRequest(c, 12003, "未知的宣达人")
	case errors.Is(err, service.ErrSessionNotFound):
		response.Unauthorized(c, 10002, "会话已结束，请重新登录")
	default:
		response.InternalError(c)
	}
}
