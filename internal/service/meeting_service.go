package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/repository"
)

// MeetingService 宣达资讯表单所需的选项与范本状态
type MeetingService interface {
	Options(ctx context.Context) (*dto.MeetingOptionsResponse, error)
	TemplateStatus(ctx context.Context, name string) (*dto.TemplateStatusResponse, error)
}

type meetingService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMeetingService 创建 MeetingService 实例
func NewMeetingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) MeetingService {
	return &meetingService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *meetingService) Options(ctx context.Context) (*dto.MeetingOptionsResponse, error) {
	locations, def, err := s.repo.Personnel.Locations(ctx)
	if err != nil {
		return nil, err
	}
	spokesmen, err := s.repo.Personnel.ListSpokesmen(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(spokesmen))
	for _, sp := range spokesmen {
		names = append(names, sp.Name)
	}
	resp := &dto.MeetingOptionsResponse{
		Locations:       locations,
		DefaultLocation: def,
		Spokesmen:       names,
		Date:            s.now().Format(s.cfg.Meeting.DateLayout),
		TimeRange:       s.cfg.Meeting.DefaultTimeRange,
	}
	if len(names) > 0 {
		resp.DefaultSpokesman = names[0]
	}
	return resp, nil
}

func (s *meetingService) TemplateStatus(ctx context.Context, name string) (*dto.TemplateStatusResponse, error) {
	resolved, found, err := s.repo.Template.Exists(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTemplateName) {
			return nil, ErrInvalidTemplateName
		}
		s.logger.Error("查询范本失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &dto.TemplateStatusResponse{
		Name:   resolved,
		Source: s.repo.Template.Source(),
		Found:  found,
	}, nil
}
