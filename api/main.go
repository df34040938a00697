package main

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/iEkal8fGe/warehouse/internal/auth"
	"github.com/iEkal8fGe/warehouse/internal/config"
	"github.com/iEkal8fGe/warehouse/internal/db"
	wh "github.com/iEkal8fGe/warehouse/internal/http"
	"github.com/iEkal8fGe/warehouse/internal/http/handlers"
	rl "github.com/iEkal8fGe/warehouse/internal/http/rate_limiter"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	auth.SetSecret(cfg.JWTSecret)
	auth.SetTokenTTL(cfg.AccessTokenTTL)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()
	handlers.SetRevoker(auth.NewRedisRevoker(rdb))

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Could not connect to database: %v", err)
	}
	defer database.Close()

	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetWarehouseRepo(repo.NewPostgresWarehouseRepository(database))
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetOrderRepo(repo.NewPostgresOrderRepository(database))
	handlers.SetSupplyRepo(repo.NewPostgresSupplyRepository(database))
	handlers.SetInventoryRepo(repo.NewPostgresInventoryRepository(database))
	handlers.SetExternalAPIKey(cfg.ExternalAPIKey)

	rl.SetLimits(cfg.LoginRate, cfg.LoginBurst)
	go rl.StartVisitorCleanupLoop()

	r := wh.NewRouter()
	log.Infof("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
