package config

import "time"

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Config 环境变量名由前缀与字段路径拼出，例如 LAB_DATABASE_PATH、LAB_S3_ACCESS_KEY。
// 字段不带 envconfig 标签，避免回退读取 PATH、HOME 这类无前缀的系统变量。
type Config struct {
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	Domain   string   `mapstructure:"domain"`
	Mode     Mode     `mapstructure:"mode"`
	Secret   string   `mapstructure:"secret"` // 会话令牌签名密钥
	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
	Session  Session  `mapstructure:"session"`
	Admin    Admin    `mapstructure:"admin"`
	Contact  Contact  `mapstructure:"contact"`
	Storage  Storage  `mapstructure:"storage"`
	S3       S3       `mapstructure:"s3"`
	Log      Log      `mapstructure:"log"`
	Sentry   Sentry   `mapstructure:"sentry"`
	OTel     OTel     `mapstructure:"otel"`
}

type Database struct {
	Driver   string `mapstructure:"driver"` // mysql 或 sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `split_words:"true" mapstructure:"db_name"`
	Path     string `mapstructure:"path"` // sqlite 文件路径
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Session struct {
	CookieName      string        `split_words:"true" mapstructure:"cookie_name"`
	TTL             time.Duration `mapstructure:"ttl"`
	Store           string        `mapstructure:"store"` // database 或 redis
	CleanupInterval time.Duration `split_words:"true" mapstructure:"cleanup_interval"`
}

// Admin 启动时写入的初始管理员
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Contact struct {
	Email   string `mapstructure:"email"`
	Address string `mapstructure:"address"`
	MapURL  string `split_words:"true" mapstructure:"map_url"`
}

type Storage struct {
	Driver  string `mapstructure:"driver"` // local 或 s3
	Home    string `mapstructure:"home"`
	BaseURL string `split_words:"true" mapstructure:"base_url"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `split_words:"true" mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `split_words:"true" mapstructure:"access_key"`
	SecretAccessKey string `split_words:"true" mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `split_words:"true" mapstructure:"path_style"`
}

type Log struct {
	FilePath   string `split_words:"true" mapstructure:"file_path"`   // 日志文件路径
	Level      string `mapstructure:"level"`                          // 日志级别：debug, info, warn, error
	MaxSize    int    `split_words:"true" mapstructure:"max_size"`    // 日志文件最大大小（MB）
	MaxBackups int    `split_words:"true" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `split_words:"true" mapstructure:"max_age"`     // 日志文件保留天数
	Compress   bool   `mapstructure:"compress"`                       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `mapstructure:"dsn"`
	Environment string        `mapstructure:"environment"`
	SampleRate  float64       `split_words:"true" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int `split_words:"true" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int `split_words:"true" mapstructure:"redis_slow_threshold_ms"`
}

type OTel struct {
	Enable      bool   `mapstructure:"enable"`
	ServiceName string `split_words:"true" mapstructure:"service_name"`
	AgentHost   string `split_words:"true" mapstructure:"agent_host"`
	AgentPort   string `split_words:"true" mapstructure:"agent_port"`
}

func (c *Config) IsRelease() bool {
	return c.Mode == ModeRelease
}
