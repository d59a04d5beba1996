package repository

import (
	"context"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/model"
)

// PersonnelRepository 名单、宣达人与地点的数据访问接口
// 数据在进程生命周期内不变，可被所有会话并发读取
type PersonnelRepository interface {
	List(ctx context.Context) ([]model.Personnel, error)
	GetByID(ctx context.Context, id string) (*model.Personnel, error)
	ListSpokesmen(ctx context.Context) ([]model.Spokesman, error)
	GetSpokesman(ctx context.Context, name string) (*model.Spokesman, error)
	Locations(ctx context.Context) ([]string, int, error)
}

type personnelRepo struct {
	personnel       []model.Personnel
	index           map[string]int
	spokesmen       []model.Spokesman
	locations       []string
	defaultLocation int
}

// NewPersonnelRepo 创建 PersonnelRepository 实例
func NewPersonnelRepo(cfg *config.RosterConfig) PersonnelRepository {
	r := &personnelRepo{
		personnel:       make([]model.Personnel, 0, len(cfg.Personnel)),
		index:           make(map[string]int, len(cfg.Personnel)),
		locations:       append([]string(nil), cfg.Locations...),
		defaultLocation: cfg.DefaultLocation,
	}
	for _, p := range cfg.Personnel {
		r.index[p.ID] = len(r.personnel)
		r.personnel = append(r.personnel, model.Personnel{ID: p.ID, Name: p.Name})
	}
	for _, s := range cfg.Spokesmen {
		r.spokesmen = append(r.spokesmen, model.Spokesman{Name: s.Name, EmployeeID: s.EmployeeID})
	}
	return r
}

// List 按名单原有顺序返回全部人员
func (r *personnelRepo) List(_ context.Context) ([]model.Personnel, error) {
	out := make([]model.Personnel, len(r.personnel))
	copy(out, r.personnel)
	return out, nil
}

func (r *personnelRepo) GetByID(_ context.Context, id string) (*model.Personnel, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.personnel[i]
	return &p, nil
}

func (r *personnelRepo) ListSpokesmen(_ context.Context) ([]model.Spokesman, error) {
	out := make([]model.Spokesman, len(r.spokesmen))
	copy(out, r.spokesmen)
	return out, nil
}

func (r *personnelRepo) GetSpokesman(_ context.Context, name string) (*model.Spokesman, error) {
	for _, s := range r.spokesmen {
		if s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (r *personnelRepo) Locations(_ context.Context) ([]string, int, error) {
	return append([]string(nil), r.locations...), r.defaultLocation, nil
}
