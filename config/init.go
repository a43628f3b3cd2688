package config

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 LAB_PORT、LAB_DATABASE_DRIVER
const EnvPrefix = "LAB"

// DefaultSecret 仅用于开发，release 模式下必须替换
const DefaultSecret = "change-me"

var ErrDefaultSecret = errors.New("config: secret must be changed in release mode")

var (
	cfg  *Config
	mu   sync.RWMutex
	once sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("secret", DefaultSecret)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.db_name", "lab_website")
	v.SetDefault("database.path", "lab_website.db")

	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("session.cookie_name", "lab_session")
	v.SetDefault("session.ttl", 8*time.Hour)
	v.SetDefault("session.store", "database")
	v.SetDefault("session.cleanup_interval", 30*time.Minute)

	v.SetDefault("admin.username", "admin")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.home", "static/uploads")
	v.SetDefault("storage.base_url", "/static/uploads")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("otel.service_name", "lab-website")
}

// Init 依次读取 .env、config.yaml 与环境变量，后者覆盖前者
func Init() {
	once.Do(func() {
		c, err := Load(os.Getenv(EnvPrefix + "_CONFIG"))
		if err != nil {
			panic(err)
		}
		Set(c)
	})
}

// Load 读取指定路径的配置文件，path 为空时在工作目录查找 config.yaml
func Load(path string) (*Config, error) {
	// .env 可选
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return nil, err
	}
	c.Mode = Mode(strings.ToLower(string(c.Mode)))
	if c.Mode != ModeRelease {
		c.Mode = ModeDebug
	}
	if c.IsRelease() && (c.Secret == "" || c.Secret == DefaultSecret) {
		return nil, ErrDefaultSecret
	}
	return c, nil
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Set 替换全局配置，测试中用于注入
func Set(c *Config) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// Default 返回只包含默认值的配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c := &Config{}
	_ = v.Unmarshal(c)
	return c
}
