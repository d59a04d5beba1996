package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			SessionSecret: "test-secret-key-for-unit-testing-2026",
			SessionTTL:    time.Hour,
			Users: []UserConfig{
				{Username: "Tester", Name: "Tester", Salt: "SaltSalt01", PwHash: strings.Repeat("a", 64)},
			},
		},
		Roster: RosterConfig{
			Locations: []string{"工四廠"},
			Spokesmen: []SpokesmanConfig{{Name: "陳淑敏", EmployeeID: "B00011"}},
			Personnel: []PersonnelConfig{{ID: "B00011", Name: "陳淑敏"}, {ID: "F00001", Name: "黛安娜"}},
		},
		Template: TemplateConfig{Source: "file", FontSize: 12},
	}
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	t.Setenv("DLM_AUTH_SESSION_SECRET", "test-secret-key-for-unit-testing-2026")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("期望 port=8080，实际=%d", cfg.Server.Port)
	}
	if len(cfg.Roster.Personnel) != 48 {
		t.Errorf("期望名单 48 人，实际=%d", len(cfg.Roster.Personnel))
	}
	if len(cfg.Auth.Users) != 7 {
		t.Errorf("期望 7 个账号，实际=%d", len(cfg.Auth.Users))
	}
	if cfg.Auth.SessionTTL != 12*time.Hour {
		t.Errorf("期望 session_ttl=12h，实际=%v", cfg.Auth.SessionTTL)
	}
	if cfg.Roster.Locations[cfg.Roster.DefaultLocation] != "工四廠" {
		t.Errorf("默认地点错误: %s", cfg.Roster.Locations[cfg.Roster.DefaultLocation])
	}
	if cfg.Template.Source != "file" {
		t.Errorf("期望 template.source=file，实际=%s", cfg.Template.Source)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DLM_AUTH_SESSION_SECRET", "test-secret-key-for-unit-testing-2026")
	t.Setenv("DLM_SERVER_PORT", "9090")
	t.Setenv("DLM_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际=%s", cfg.Log.Level)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DLM_AUTH_SESSION_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Error("缺少 session_secret 时应返回错误")
	}
}

func TestLoadRaw_SkipsValidation(t *testing.T) {
	t.Setenv("DLM_AUTH_SESSION_SECRET", "")

	cfg, err := LoadRaw("")
	if err != nil {
		t.Fatalf("LoadRaw 不应校验 session_secret: %v", err)
	}
	if cfg.Auth.FallbackPepper == "" {
		t.Error("期望内置配置提供 fallback_pepper")
	}
	if cfg.Auth.SecretsFile != "config/secrets.env" {
		t.Errorf("期望 secrets_file=config/secrets.env, 实际=%q", cfg.Auth.SecretsFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"合法配置", func(c *Config) {}, true},
		{"密钥过短", func(c *Config) { c.Auth.SessionSecret = "short" }, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, false},
		{"账号为空", func(c *Config) { c.Auth.Users = nil }, false},
		{"哈希长度错误", func(c *Config) { c.Auth.Users[0].PwHash = "abc" }, false},
		{"哈希非十六进制", func(c *Config) { c.Auth.Users[0].PwHash = strings.Repeat("z", 64) }, false},
		{"缺少 salt", func(c *Config) { c.Auth.Users[0].Salt = "" }, false},
		{"工号重复", func(c *Config) {
			c.Roster.Personnel = append(c.Roster.Personnel, PersonnelConfig{ID: "F00001", Name: "重复"})
		}, false},
		{"宣达人不在名单", func(c *Config) { c.Roster.Spokesmen[0].EmployeeID = "X99999" }, false},
		{"默认地点越界", func(c *Config) { c.Roster.DefaultLocation = 3 }, false},
		{"未知范本来源", func(c *Config) { c.Template.Source = "ftp" }, false},
		{"s3 缺少 bucket", func(c *Config) { c.Template.Source = "s3" }, false},
		{"s3 配置完整", func(c *Config) {
			c.Template.Source = "s3"
			c.S3.Bucket = "templates"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("期望校验通过，实际: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("期望校验失败")
			}
		})
	}
}
