package config

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed default.yaml
var defaultYAML []byte

// envFile 本地开发用 .env，已存在的进程环境变量优先
const envFile = "config/.env"

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Roster   RosterConfig   `mapstructure:"roster"`
	Meeting  MeetingConfig  `mapstructure:"meeting"`
	Template TemplateConfig `mapstructure:"template"`
	S3       S3Config       `mapstructure:"s3"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	CORS         CORSConfig    `mapstructure:"cors"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int64         `mapstructure:"body_limit"` // 请求体上限（字节）
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AuthConfig 登录与会话配置
type AuthConfig struct {
	SessionSecret  string        `mapstructure:"session_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	Cookie         CookieConfig  `mapstructure:"cookie"`
	SecretsFile    string        `mapstructure:"secrets_file"`    // PEPPER 的第二来源
	FallbackPepper string        `mapstructure:"fallback_pepper"` // 环境变量与 secrets 均缺失时使用
	Users          []UserConfig  `mapstructure:"users"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	Domain   string `mapstructure:"domain"`
}

// UserConfig 静态账号：只存 salt 与哈希
type UserConfig struct {
	Username string `mapstructure:"username"`
	Name     string `mapstructure:"name"`
	Salt     string `mapstructure:"salt"`
	PwHash   string `mapstructure:"pw_hash"`
}

// RosterConfig 人员名单配置
type RosterConfig struct {
	Locations       []string          `mapstructure:"locations"`
	DefaultLocation int               `mapstructure:"default_location"`
	Spokesmen       []SpokesmanConfig `mapstructure:"spokesmen"`
	Personnel       []PersonnelConfig `mapstructure:"personnel"`
}

// SpokesmanConfig 宣达人姓名与工号的对应
type SpokesmanConfig struct {
	Name       string `mapstructure:"name"`
	EmployeeID string `mapstructure:"employee_id"`
}

// PersonnelConfig 名单中的一位人员
type PersonnelConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// MeetingConfig 宣达信息默认值
type MeetingConfig struct {
	DefaultTimeRange string `mapstructure:"default_time_range"`
	DateLayout       string `mapstructure:"date_layout"`
}

// TemplateConfig Word 范本配置
type TemplateConfig struct {
	Source       string `mapstructure:"source"` // "file" | "s3"
	Dir          string `mapstructure:"dir"`
	DefaultName  string `mapstructure:"default_name"`
	OutputPrefix string `mapstructure:"output_prefix"`
	LabelFont    string `mapstructure:"label_font"`
	IDFont       string `mapstructure:"id_font"`
	NameFont     string `mapstructure:"name_font"`
	FontSize     int    `mapstructure:"font_size"`
}

// S3Config 范本存放于对象存储时的配置
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// RedisConfig Redis 会话存储配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从内置默认、配置文件与环境变量加载配置并校验
// 优先级：环境变量 > 配置文件 > 内置 default.yaml > 默认值
func Load(path string) (*Config, error) {
	cfg, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRaw 与 Load 相同的加载顺序，但不做校验；供只需要部分配置的命令行工具使用
func LoadRaw(path string) (*Config, error) {
	loadDotEnv(envFile)

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.body_limit", 1<<20)

	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")
	v.SetDefault("auth.cookie.domain", "")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "templates/")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// ── 内置配置 ──
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("DLM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖内置配置和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv 将 .env 中的键导出到进程环境（不覆盖已有值）
func loadDotEnv(file string) {
	envMap, err := godotenv.Read(file)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("配置校验失败: auth.session_secret 不能为空")
	}
	if len(c.Auth.SessionSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.session_secret 长度不能少于 16 字符")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("配置校验失败: auth.session_ttl 必须大于 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if err := c.validateUsers(); err != nil {
		return err
	}
	if err := c.validateRoster(); err != nil {
		return err
	}
	switch c.Template.Source {
	case "file":
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("配置校验失败: template.source=s3 时 s3.bucket 不能为空")
		}
	default:
		return fmt.Errorf("配置校验失败: 未知的 template.source %q", c.Template.Source)
	}
	if c.Template.FontSize <= 0 {
		return fmt.Errorf("配置校验失败: template.font_size 必须大于 0")
	}
	return nil
}

func (c *Config) validateUsers() error {
	if len(c.Auth.Users) == 0 {
		return fmt.Errorf("配置校验失败: auth.users 不能为空")
	}
	seen := make(map[string]bool, len(c.Auth.Users))
	for _, u := range c.Auth.Users {
		if u.Username == "" {
			return fmt.Errorf("配置校验失败: 账号名不能为空")
		}
		if seen[u.Username] {
			return fmt.Errorf("配置校验失败: 账号 %s 重复", u.Username)
		}
		seen[u.Username] = true
		if u.Salt == "" {
			return fmt.Errorf("配置校验失败: 账号 %s 缺少 salt", u.Username)
		}
		if len(u.PwHash) != 64 {
			return fmt.Errorf("配置校验失败: 账号 %s 的 pw_hash 必须为 64 位十六进制", u.Username)
		}
		if _, err := hex.DecodeString(u.PwHash); err != nil {
			return fmt.Errorf("配置校验失败: 账号 %s 的 pw_hash 不是十六进制", u.Username)
		}
	}
	return nil
}

func (c *Config) validateRoster() error {
	if len(c.Roster.Personnel) == 0 {
		return fmt.Errorf("配置校验失败: roster.personnel 不能为空")
	}
	ids := make(map[string]bool, len(c.Roster.Personnel))
	for _, p := range c.Roster.Personnel {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("配置校验失败: 名单中存在空的工号或姓名")
		}
		if ids[p.ID] {
			return fmt.Errorf("配置校验失败: 工号 %s 重复", p.ID)
		}
		ids[p.ID] = true
	}
	if len(c.Roster.Spokesmen) == 0 {
		return fmt.Errorf("配置校验失败: roster.spokesmen 不能为空")
	}
	for _, s := range c.Roster.Spokesmen {
		if !ids[s.EmployeeID] {
			return fmt.Errorf("配置校验失败: 宣达人 %s 的工号 %s 不在名单中", s.Name, s.EmployeeID)
		}
	}
	if len(c.Roster.Locations) == 0 {
		return fmt.Errorf("配置校验失败: roster.locations 不能为空")
	}
	if c.Roster.DefaultLocation < 0 || c.Roster.DefaultLocation >= len(c.Roster.Locations) {
		return fmt.Errorf("配置校验失败: roster.default_location 超出范围")
	}
	return nil
}
