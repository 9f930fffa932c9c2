package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置，对应 config.yaml
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
	QR     QRConfig     `mapstructure:"qr"`
	Geo    GeoConfig    `mapstructure:"geo"`
	I18n   I18nConfig   `mapstructure:"i18n"`
	Stats  StatsConfig  `mapstructure:"stats"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// BaseURL 生成短链时使用的主机名，为空时使用请求的 Host
	BaseURL string `mapstructure:"base_url"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"` // mysql | postgres | sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	MaxIdle     int           `mapstructure:"max_idle"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type QRConfig struct {
	AllowedDomain string        `mapstructure:"allowed_domain"`
	LogoPath      string        `mapstructure:"logo_path"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	Size          int           `mapstructure:"size"`
}

type GeoConfig struct {
	// DBPath GeoLite2-City.mmdb 路径，为空时禁用地理位置解析
	DBPath string `mapstructure:"db_path"`
}

type I18nConfig struct {
	Files       []string `mapstructure:"files"`
	DefaultLang string   `mapstructure:"default_lang"`
}

type StatsConfig struct {
	Cron string `mapstructure:"cron"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shortlink-qr")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.max_idle", 10)
	v.SetDefault("redis.idle_timeout", 240*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "logs/shortlink.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("qr.allowed_domain", "flavorqueste.com")
	v.SetDefault("qr.logo_path", "assets/img/logo.png")
	v.SetDefault("qr.cache_ttl", 24*time.Hour)
	v.SetDefault("qr.size", 500)
	v.SetDefault("i18n.files", []string{"./i18n/en.toml", "./i18n/zh.toml"})
	v.SetDefault("i18n.default_lang", "en")
	v.SetDefault("stats.cron", "*/10 * * * *")
}

// Load 从 path 目录读取 config.yaml，环境变量 SHORTLINK_* 可覆盖同名配置
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("shortlink")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
