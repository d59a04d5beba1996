package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/pkg/docx/docxtest"
	"daily-briefing/backend/pkg/jwt"
)

// ── 测试数据 ──

const testPepper = "test-pepper"

// testConfig 两个测试账号：alice/A00001、bob/A00002
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			SessionSecret: "test-secret-key-for-unit-testing-2026",
			SessionTTL:    12 * time.Hour,
			Users: []config.UserConfig{
				{Username: "alice", Name: "Alice", Salt: "SaltSalt01", PwHash: "8218546d6dfc48f9dc9e8fd58c5e11eb0b6b31d5a9e1058ab41e8e3e6f1fd3ac"},
				{Username: "bob", Name: "Bob", Salt: "SaltSalt02", PwHash: "681888cfb205897d3edc8e81dc124cf519f4a8043b09cb736e57c4c43429ec53"},
			},
		},
		Roster: config.RosterConfig{
			Locations:       []string{"工四廠-C1", "工四廠", "工四廠-A/B"},
			DefaultLocation: 1,
			Spokesmen: []config.SpokesmanConfig{
				{Name: "陳淑敏", EmployeeID: "B00011"},
				{Name: "陳玫曄", EmployeeID: "B00013"},
				{Name: "郭秀坪", EmployeeID: "B00039"},
			},
			Personnel: []config.PersonnelConfig{
				{ID: "B00011", Name: "陳淑敏"},
				{ID: "B00013", Name: "陳玫曄"},
				{ID: "B00015", Name: "羅思如"},
				{ID: "B00039", Name: "郭秀坪"},
				{ID: "F00001", Name: "黛安娜"},
				{ID: "F00002", Name: "雪莉"},
			},
		},
		Meeting: config.MeetingConfig{
			DefaultTimeRange: "08:00 ~ 08:15",
			DateLayout:       "2006/01/02",
		},
		Template: config.TemplateConfig{
			Source:       "file",
			DefaultName:  "範本.docx",
			OutputPrefix: "生產線每日宣達事項_出席記錄",
			LabelFont:    "標楷體",
			IDFont:       "Arial",
			NameFont:     "標楷體",
			FontSize:     12,
		},
	}
}

// testTemplate 与正式范本结构相同：资讯表格 + 名单表格（含一行旧资料）
func testTemplate() []byte {
	return docxtest.Build(
		docxtest.Table{
			{"地點\nLocation", "", "日期\nDate", ""},
			{"時間\nTime", "", "宣達人\nSpokesman", ""},
		},
		docxtest.Table{
			{"工號", "姓名", "簽名", "日期"},
			{"X0000", "舊資料", "", ""},
		},
	)
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
	err      error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Save(_ context.Context, s *model.Session) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *mockSessionRepo) Get(_ context.Context, id string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.sessions, id)
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	files       map[string][]byte
	defaultName string
	err         error
}

func newMockTemplateRepo(defaultName string) *mockTemplateRepo {
	return &mockTemplateRepo{files: make(map[string][]byte), defaultName: defaultName}
}

func (m *mockTemplateRepo) Source() string      { return "mock" }
func (m *mockTemplateRepo) DefaultName() string { return m.defaultName }

func (m *mockTemplateRepo) name(n string) (string, error) {
	if n == "" {
		n = m.defaultName
	}
	if n == "../escape.docx" {
		return "", repository.ErrInvalidTemplateName
	}
	return n, nil
}

func (m *mockTemplateRepo) Exists(_ context.Context, n string) (string, bool, error) {
	n, err := m.name(n)
	if err != nil {
		return "", false, err
	}
	if m.err != nil {
		return n, false, m.err
	}
	_, ok := m.files[n]
	return n, ok, nil
}

func (m *mockTemplateRepo) Load(_ context.Context, n string) ([]byte, error) {
	n, err := m.name(n)
	if err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.files[n]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return data, nil
}

// ── 测试装配 ──

type testEnv struct {
	cfg       *config.Config
	repo      *repository.Repository
	sessions  *mockSessionRepo
	templates *mockTemplateRepo
	jwtMgr    *jwt.Manager
	svc       *Service
}

func newTestEnv() *testEnv {
	return newTestEnvWithLogger(zap.NewNop())
}

func newTestEnvWithLogger(logger *zap.Logger) *testEnv {
	cfg := testConfig()
	sessions := newMockSessionRepo()
	templates := newMockTemplateRepo(cfg.Template.DefaultName)
	templates.files[cfg.Template.DefaultName] = testTemplate()

	repo := &repository.Repository{
		User:      repository.NewUserRepo(cfg.Auth.Users),
		Personnel: repository.NewPersonnelRepo(&cfg.Roster),
		Session:   sessions,
		Template:  templates,
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return &testEnv{
		cfg:       cfg,
		repo:      repo,
		sessions:  sessions,
		templates: templates,
		jwtMgr:    jwtMgr,
		svc:       NewService(cfg, repo, jwtMgr, testPepper, logger),
	}
}

// newSession 直接放入一个勾选全员的会话
func (e *testEnv) newSession(id string) *model.Session {
	s := &model.Session{
		ID:          id,
		Username:    "alice",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	roster, _ := e.repo.Personnel.List(context.Background())
	s.SelectAll(roster)
	e.sessions.sessions[id] = s
	return s
}
