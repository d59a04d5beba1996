package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/pkg/docx"
	"daily-briefing/backend/pkg/response"
)

// filenameTimeLayout 输出文件名中的时间戳 YYYYMMDD-HHMM
const filenameTimeLayout = "20060102-1504"

// AttendanceService 产生出席记录 Word 文件
type AttendanceService interface {
	Generate(ctx context.Context, sessionID string, req *dto.GenerateAttendanceRequest) (*dto.AttendanceFile, error)
}

type attendanceService struct {
	cfg      *config.Config
	repo     *repository.Repository
	roster   RosterService
	locators []FieldLocator
	logger   *zap.Logger
	now      func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(
	cfg *config.Config,
	repo *repository.Repository,
	roster RosterService,
	logger *zap.Logger,
) AttendanceService {
	return &attendanceService{
		cfg:      cfg,
		repo:     repo,
		roster:   roster,
		locators: DefaultFieldLocators(),
		logger:   logger,
		now:      time.Now,
	}
}

// Generate 依序：读取范本 → 校验日期、时间与勾选 → 填写范本
// 任一步失败都不产生文件，会话中的勾选不受影响
func (s *attendanceService) Generate(ctx context.Context, sessionID string, req *dto.GenerateAttendanceRequest) (*dto.AttendanceFile, error) {
	// 1. 范本必须存在
	tmpl, err := s.repo.Template.Load(ctx, req.Template)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTemplateNotFound
		case errors.Is(err, repository.ErrInvalidTemplateName):
			return nil, ErrInvalidTemplateName
		}
		s.logger.Error("读取范本失败", zap.String("template", req.Template), zap.Error(err))
		return nil, err
	}

	// 2. 校验宣达资讯并取得出席名单
	in, err := prepareAttendance(ctx, s.roster, sessionID, req)
	if err != nil {
		return nil, err
	}

	// 3. 填写范本
	tc := s.cfg.Template
	data, report, err := BuildAttendanceDocument(tmpl, in.attendees, in.meta, s.locators, DocumentFonts{
		Label: docx.Font{Name: tc.LabelFont, Size: tc.FontSize},
		ID:    docx.Font{Name: tc.IDFont, Size: tc.FontSize},
		Name:  docx.Font{Name: tc.NameFont, Size: tc.FontSize},
	})
	if missing := report.Missing(); len(missing) > 0 {
		s.logger.Warn("范本中找不到标签，已略过",
			zap.String("template", req.Template),
			zap.Strings("fields", missing),
		)
	}
	if err != nil {
		if errors.Is(err, ErrTemplateMalformed) {
			s.logger.Warn("范本格式异常", zap.String("template", req.Template), zap.Error(err))
		} else {
			s.logger.Error("产生出席记录失败", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("已产生出席记录",
		zap.String("session_id", sessionID),
		zap.Int("attendees", len(in.attendees)),
		zap.String("spokesman", in.meta.Spokesman),
	)

	return &dto.AttendanceFile{
		Filename:    outputFilename(tc.OutputPrefix, s.now(), "docx"),
		ContentType: response.MIMEDocx,
		Data:        data,
	}, nil
}

// ── 共用：校验与名单 ──

type attendanceInput struct {
	meta      model.MeetingMeta
	attendees []model.Personnel
}

// prepareAttendance 去掉各栏首尾空白后依序校验：日期非空、时间含 "~"、宣达人有效、至少一人出席
func prepareAttendance(ctx context.Context, roster RosterService, sessionID string, req *dto.GenerateAttendanceRequest) (*attendanceInput, error) {
	meta := model.MeetingMeta{
		Location:  strings.TrimSpace(req.Location),
		Date:      strings.TrimSpace(req.Date),
		TimeRange: strings.TrimSpace(req.TimeRange),
		Spokesman: strings.TrimSpace(req.Spokesman),
	}
	if meta.Date == "" {
		return nil, ErrDateRequired
	}
	if !strings.Contains(meta.TimeRange, "~") {
		return nil, ErrTimeRangeInvalid
	}

	sp, err := roster.ResolveSpokesman(ctx, meta.Spokesman)
	if err != nil {
		return nil, err
	}
	meta.Spokesman = sp.Name

	attendees, err := roster.SelectedAttendees(ctx, sessionID, sp.Name)
	if err != nil {
		return nil, err
	}
	if len(attendees) == 0 {
		return nil, ErrNoAttendees
	}
	return &attendanceInput{meta: meta, attendees: attendees}, nil
}

func outputFilename(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format(filenameTimeLayout), ext)
}
