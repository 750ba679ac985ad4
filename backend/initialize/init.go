package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jiansou/backend/app/controllers"
	"jiansou/backend/app/db"
	"jiansou/backend/app/defaults"
	jwtutil "jiansou/backend/app/jwt"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/repo"
	"jiansou/backend/app/services"
	"jiansou/backend/config"
	"jiansou/backend/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	Redis  *redis.Client
	Router http.Handler
}

// Build wires storage, services, controllers and the router from cfg.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: %w", err)
	}
	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
		Path:     cfg.DB.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	catalog := defaults.Builtin()
	if cfg.Defaults.CatalogFile != "" {
		if catalog, err = defaults.LoadFile(cfg.Defaults.CatalogFile); err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
	}
	provider := defaults.NewProvider(catalog)

	signer := jwtutil.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpMin, log.With().Str("component", "jwt").Logger())

	// services
	svcLog := log.With().Str("component", "service").Logger()
	userSvc := services.NewUserService(gdb, provider, services.BcryptHasher{}, cfg.Auth.MinPasswordLength, svcLog)
	identity := services.NewIdentityService(repo.NewUserRepository(gdb), signer, svcLog)
	linkSvc := services.NewQuickLinkService(gdb, provider)
	engineSvc := services.NewSearchEngineService(gdb, provider)
	searchSvc := services.NewSearchService(gdb, engineSvc, cfg.Search.HistoryLimit, svcLog)
	avatarSvc := services.NewAvatarService(cfg.WebDAV, userSvc, svcLog)
	wallpaperSvc := services.NewWallpaperService(cfg.Wallpaper.Timeout)
	if !cfg.WebDAV.Configured() {
		log.Warn().Msg("webdav is not configured, avatar endpoints will answer 503")
	}

	// controllers
	ctrlLog := log.With().Str("component", "http").Logger()
	ctrls := router.Controllers{
		HTTP:          controllers.NewHTTPController(gdb),
		Auth:          controllers.NewAuthController(userSvc, signer, ctrlLog),
		QuickLinks:    controllers.NewQuickLinkController(linkSvc, ctrlLog),
		SearchEngines: controllers.NewSearchEngineController(engineSvc, ctrlLog),
		Search:        controllers.NewSearchController(searchSvc, ctrlLog),
		Avatars:       controllers.NewAvatarController(avatarSvc, ctrlLog),
		Wallpapers:    controllers.NewWallpaperController(wallpaperSvc, ctrlLog),
	}

	limiter, rdb := newLoginLimiter(ctx, cfg, log)
	mw := &middleware.Auth{Identity: identity, Log: ctrlLog}
	h := router.NewRouter(ctrls, mw, middleware.RateLimit(limiter, proxies, ctrlLog))
	h = middleware.Logging(log.With().Str("component", "access").Logger())(h)

	return &App{Cfg: cfg, Log: log, DB: gdb, Redis: rdb, Router: h}, nil
}

// newLoginLimiter prefers Redis so limits hold across instances and falls
// back to process memory when Redis is not configured or unreachable.
func newLoginLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (middleware.Limiter, *redis.Client) {
	perMinute := cfg.RateLimit.LoginPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	if cfg.Redis.Addr == "" {
		return middleware.NewMemoryLimiter(perMinute, time.Minute), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, using in-memory login limiter")
		_ = rdb.Close()
		return middleware.NewMemoryLimiter(perMinute, time.Minute), nil
	}
	return middleware.NewRedisLimiter(rdb, "jiansou:login", perMinute, time.Minute), rdb
}

// Close releases the database pool and the Redis client.
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
