package app

import (
	"log/slog"

	httpapp "golden_hour/internal/app/http"
	"golden_hour/internal/cache"
	"golden_hour/internal/config"
	"golden_hour/internal/remote"
	"golden_hour/internal/repository"
	querysvc "golden_hour/internal/services/query_service"
	redisapp "golden_hour/internal/storage/redis"
	httprouters "golden_hour/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Redis      *redisapp.Client
}

// New wires the whole gateway: the shared cache store and query service,
// the remote backend client, the redis-backed session repository, and the
// HTTP surface on top of them.
func New(log *slog.Logger, cfg *config.Config) *App {
	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	backend := remote.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	store := cache.NewStore(log)
	queries := querysvc.NewQueryService(log, store, backend)

	sessions := repository.NewRedisSessionRepo(redisClient)

	routers := httprouters.NewRouter(
		log,
		store,
		queries,
		backend,
		sessions,
		[]byte(cfg.Session.Secret),
		cfg.Session.TokenTTL,
		cfg.Session.RefreshTTL,
		cfg.Session.RedirectTTL,
	)

	server := httpapp.New(log, []byte(cfg.Session.Secret), cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
		Redis:      redisClient,
	}
}
