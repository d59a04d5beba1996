package service

import (
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Roster     RosterService
	Meeting    MeetingService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	pepper string,
	logger *zap.Logger,
) *Service {
	roster := NewRosterService(repo, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, pepper, logger),
		Roster:     roster,
		Meeting:    NewMeetingService(cfg, repo, logger),
		Attendance: NewAttendanceService(cfg, repo, roster, logger),
		Export:     NewExportService(cfg, roster, logger),
	}
}
