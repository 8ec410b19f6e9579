// cmd/server/main.go
package main

import (
	"context"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/cache"
	"github.com/quadfall/quadfall/internal/chat"
	"github.com/quadfall/quadfall/internal/config"
	"github.com/quadfall/quadfall/internal/database"
	"github.com/quadfall/quadfall/internal/handlers"
	"github.com/quadfall/quadfall/internal/lobby"
	"github.com/quadfall/quadfall/internal/users"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("connect redis: %v", err)
	}
	defer redisClient.Close()

	signer, err := auth.NewSigner(cfg.SessionTTL)
	if err != nil {
		logger.Fatalf("init token signer: %v", err)
	}
	sessions := auth.NewSessions(signer, cache.NewSessionStore(redisClient))

	srv := &handlers.Server{
		Logger:        logger,
		Sessions:      sessions,
		Users:         users.NewService(database.NewUserStore(pool)),
		Lobby:         lobby.NewService(database.NewLobbyStore(pool)),
		Chat:          chat.NewChannel(database.NewChatStore(pool)),
		Plays:         database.NewPlayStore(pool),
		Settings:      database.NewSettingsStore(pool),
		AllowedOrigin: cfg.AllowedOrigin,
	}

	logger.Infof("Running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Routes()); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
