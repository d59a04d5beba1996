package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/internal/repository"
)

// RosterService 名单浏览与勾选业务接口
//
// 勾选集合保存在会话中。凡是带宣达人的操作，都会先把宣达人本人的工号从勾选中移除，
// 因此宣达人永远不会出现在出席名单里。
type RosterService interface {
	List(ctx context.Context, sessionID string, filter dto.RosterFilter) (*dto.RosterResponse, error)
	Toggle(ctx context.Context, sessionID string, req *dto.ToggleSelectionRequest) (*dto.RosterResponse, error)
	Bulk(ctx context.Context, sessionID string, req *dto.BulkSelectionRequest) (*dto.RosterResponse, error)
	// SelectedAttendees 按名单原有顺序返回已勾选人员（不含宣达人）
	SelectedAttendees(ctx context.Context, sessionID, spokesman string) ([]model.Personnel, error)
	// ResolveSpokesman 空名称取第一位宣达人
	ResolveSpokesman(ctx context.Context, name string) (*model.Spokesman, error)
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger}
}

func (s *rosterService) List(ctx context.Context, sessionID string, filter dto.RosterFilter) (*dto.RosterResponse, error) {
	session, spokesmanID, err := s.load(ctx, sessionID, filter.Spokesman)
	if err != nil {
		return nil, err
	}
	if session.IsSelected(spokesmanID) {
		session.SetSelected(spokesmanID, false)
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.view(ctx, session, filter, spokesmanID)
}

func (s *rosterService) Toggle(ctx context.Context, sessionID string, req *dto.ToggleSelectionRequest) (*dto.RosterResponse, error) {
	if _, err := s.repo.Personnel.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownEmployee
		}
		return nil, err
	}

	session, spokesmanID, err := s.load(ctx, sessionID, req.Spokesman)
	if err != nil {
		return nil, err
	}
	selected := req.Selected != nil && *req.Selected
	if selected && req.EmployeeID == spokesmanID {
		return nil, ErrSpokesmanNotSelectable
	}

	session.SetSelected(req.EmployeeID, selected)
	session.SetSelected(spokesmanID, false)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session, dto.RosterFilter{Spokesman: req.Spokesman}, spokesmanID)
}

func (s *rosterService) Bulk(ctx context.Context, sessionID string, req *dto.BulkSelectionRequest) (*dto.RosterResponse, error) {
	session, spokesmanID, err := s.load(ctx, sessionID, req.Spokesman)
	if err != nil {
		return nil, err
	}

	filter := req.Filter()
	switch req.Action {
	case dto.BulkSelectVisible, dto.BulkClearVisible:
		visible, err := s.filtered(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range visible {
			if req.Action == dto.BulkSelectVisible && p.ID == spokesmanID {
				continue
			}
			session.SetSelected(p.ID, req.Action == dto.BulkSelectVisible)
		}
	case dto.BulkClearAll:
		session.Selected = make(map[string]bool)
	default:
		return nil, errors.New("未知的批量操作: " + req.Action)
	}

	session.SetSelected(spokesmanID, false)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session, filter, spokesmanID)
}

func (s *rosterService) SelectedAttendees(ctx context.Context, sessionID, spokesman string) ([]model.Personnel, error) {
	session, spokesmanID, err := s.load(ctx, sessionID, spokesman)
	if err != nil {
		return nil, err
	}
	if session.IsSelected(spokesmanID) {
		session.SetSelected(spokesmanID, false)
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}

	all, err := s.repo.Personnel.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Personnel
	for _, p := range all {
		if p.ID != spokesmanID && session.IsSelected(p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *rosterService) ResolveSpokesman(ctx context.Context, name string) (*model.Spokesman, error) {
	if name == "" {
		all, err := s.repo.Personnel.ListSpokesmen(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, ErrUnknownSpokesman
		}
		return &all[0], nil
	}
	sp, err := s.repo.Personnel.GetSpokesman(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownSpokesman
		}
		return nil, err
	}
	return sp, nil
}

// ── 内部辅助 ──

// load 取回会话并解析宣达人工号；未指定宣达人时工号为空
func (s *rosterService) load(ctx context.Context, sessionID, spokesman string) (*model.Session, string, error) {
	var spokesmanID string
	if spokesman != "" {
		sp, err := s.ResolveSpokesman(ctx, spokesman)
		if err != nil {
			return nil, "", err
		}
		spokesmanID = sp.EmployeeID
	}

	session, err := s.repo.Session.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrSessionNotFound
		}
		s.logger.Error("读取会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, "", err
	}
	return session, spokesmanID, nil
}

func (s *rosterService) save(ctx context.Context, session *model.Session) error {
	if err := s.repo.Session.Save(ctx, session); err != nil {
		s.logger.Error("保存会话失败", zap.String("session_id", session.ID), zap.Error(err))
		return err
	}
	return nil
}

// filtered 目前可见的人员；同时勾选 B 与 F 时结果为空
func (s *rosterService) filtered(ctx context.Context, f dto.RosterFilter) ([]model.Personnel, error) {
	all, err := s.repo.Personnel.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Personnel
	for _, p := range all {
		if !p.Matches(f.Query) {
			continue
		}
		if f.OnlyB && !p.HasPrefix(model.PrefixB) {
			continue
		}
		if f.OnlyF && !p.HasPrefix(model.PrefixF) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *rosterService) view(ctx context.Context, session *model.Session, f dto.RosterFilter, spokesmanID string) (*dto.RosterResponse, error) {
	visible, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.Personnel.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.RosterEntry, 0, len(visible))
	for _, p := range visible {
		disabled := p.ID == spokesmanID
		list = append(list, dto.RosterEntry{
			ID:       p.ID,
			Name:     p.Name,
			Selected: !disabled && session.IsSelected(p.ID),
			Disabled: disabled,
		})
	}
	return &dto.RosterResponse{
		List:          list,
		Visible:       len(list),
		Total:         len(all),
		SelectedCount: session.SelectedCount(),
		SpokesmanID:   spokesmanID,
	}, nil
}
