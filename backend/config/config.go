package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type Auth struct {
	MinPasswordLength int
}

type Search struct {
	HistoryLimit int
}

type Defaults struct {
	CatalogFile string
}

type WebDAV struct {
	URL         string
	Username    string
	Password    string
	AvatarDir   string
	MaxFileSize int64
}

// Configured reports whether avatar storage can be used.
func (w WebDAV) Configured() bool { return w.URL != "" }

type Wallpaper struct {
	Timeout time.Duration
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RateLimit struct {
	LoginPerMinute int
	// TrustedProxies are addresses or CIDR ranges allowed to set
	// X-Forwarded-For. Empty means the direct peer is always the client.
	TrustedProxies []string
}

type Log struct {
	Level  string
	Format string
	File   string
}

type Config struct {
	Host      string
	Port      int
	DB        DB
	JWT       JWT
	Auth      Auth
	Search    Search
	Defaults  Defaults
	WebDAV    WebDAV
	Wallpaper Wallpaper
	Redis     Redis
	RateLimit RateLimit
	Log       Log
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads the YAML file at path, if any, and applies JIANSOU_* environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("jiansou")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend.host", "0.0.0.0")
	v.SetDefault("backend.port", 8000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "search")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "search")
	v.SetDefault("backend.db.path", "jiansou.db")
	v.SetDefault("backend.jwt.secret", "")
	v.SetDefault("backend.jwt.issuer", "jiansou")
	v.SetDefault("backend.jwt.exp_min", 30*24*60)
	v.SetDefault("backend.auth.min_password_length", 6)
	v.SetDefault("backend.search.history_limit", 10)
	v.SetDefault("backend.defaults.catalog_file", "")
	v.SetDefault("backend.webdav.url", "")
	v.SetDefault("backend.webdav.username", "")
	v.SetDefault("backend.webdav.password", "")
	v.SetDefault("backend.webdav.avatar_dir", "avatars")
	v.SetDefault("backend.webdav.max_file_size", 5<<20)
	v.SetDefault("backend.wallpaper.timeout", "30s")
	v.SetDefault("backend.redis.addr", "")
	v.SetDefault("backend.redis.password", "")
	v.SetDefault("backend.redis.db", 0)
	v.SetDefault("backend.ratelimit.login_per_minute", 10)
	v.SetDefault("backend.ratelimit.trusted_proxies", []string{})
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.format", "console")
	v.SetDefault("backend.log.file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Host: v.GetString("backend.host"),
		Port: v.GetInt("backend.port"),
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
			Path:   v.GetString("backend.db.path"),
		},
		JWT: JWT{
			Secret: v.GetString("backend.jwt.secret"),
			Issuer: v.GetString("backend.jwt.issuer"),
			ExpMin: v.GetInt("backend.jwt.exp_min"),
		},
		Auth:     Auth{MinPasswordLength: v.GetInt("backend.auth.min_password_length")},
		Search:   Search{HistoryLimit: v.GetInt("backend.search.history_limit")},
		Defaults: Defaults{CatalogFile: v.GetString("backend.defaults.catalog_file")},
		WebDAV: WebDAV{
			URL:         strings.TrimRight(v.GetString("backend.webdav.url"), "/"),
			Username:    v.GetString("backend.webdav.username"),
			Password:    v.GetString("backend.webdav.password"),
			AvatarDir:   strings.Trim(v.GetString("backend.webdav.avatar_dir"), "/"),
			MaxFileSize: v.GetInt64("backend.webdav.max_file_size"),
		},
		Wallpaper: Wallpaper{Timeout: v.GetDuration("backend.wallpaper.timeout")},
		Redis: Redis{
			Addr:     v.GetString("backend.redis.addr"),
			Password: v.GetString("backend.redis.password"),
			DB:       v.GetInt("backend.redis.db"),
		},
		RateLimit: RateLimit{
			LoginPerMinute: v.GetInt("backend.ratelimit.login_per_minute"),
			TrustedProxies: v.GetStringSlice("backend.ratelimit.trusted_proxies"),
		},
		Log: Log{
			Level:  v.GetString("backend.log.level"),
			Format: v.GetString("backend.log.format"),
			File:   v.GetString("backend.log.file"),
		},
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "jiansou"
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 30 * 24 * 60
	}
	if cfg.Auth.MinPasswordLength <= 0 {
		cfg.Auth.MinPasswordLength = 6
	}
	if cfg.Search.HistoryLimit <= 0 {
		cfg.Search.HistoryLimit = 10
	}
	if cfg.WebDAV.MaxFileSize <= 0 {
		cfg.WebDAV.MaxFileSize = 5 << 20
	}
	if cfg.Wallpaper.Timeout <= 0 {
		cfg.Wallpaper.Timeout = 30 * time.Second
	}
	switch cfg.DB.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}
