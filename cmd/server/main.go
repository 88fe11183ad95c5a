package main

import (
	"fmt"
	"log/slog"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/omarsaleh/bankd/config"
	"github.com/omarsaleh/bankd/infra"
	infracache "github.com/omarsaleh/bankd/infra/cache"
	accountrepo "github.com/omarsaleh/bankd/infra/repository/account"
	"github.com/omarsaleh/bankd/pkg/cache"
	accountsvc "github.com/omarsaleh/bankd/pkg/service/account"
	authsvc "github.com/omarsaleh/bankd/pkg/service/auth"
	"github.com/omarsaleh/bankd/webapi"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(logger, ".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := accountrepo.New(db)

	var accountCache cache.AccountCache
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		accountCache = infracache.NewRedisAccountCache(opt, "account:", logger)
	} else {
		accountCache = infracache.NewMemoryCache()
	}

	accountSvc := accountsvc.New(repo, accountCache, cfg.Cache.TTL, logger)
	authSvc := authsvc.New(repo, cfg.Jwt, logger)

	logger.Info(
		"starting server",
		"env", cfg.Env,
		"host", cfg.Host,
		"port", cfg.Port,
	)

	app := webapi.New(accountSvc, authSvc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return app.Listen(addr)
}
