package handler

import (
	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Roster     *RosterHandler
	Meeting    *MeetingHandler
	Attendance *AttendanceHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, &cfg.Auth),
		Roster:     NewRosterHandler(svc.Roster),
		Meeting:    NewMeetingHandler(svc.Meeting),
		Attendance: NewAttendanceHandler(svc.Attendance, svc.Export),
	}
}
