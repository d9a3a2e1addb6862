package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/logger"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
	"github.com/brisa-edu/brisa-client/internal/server"
)

func main() {
	cfg, err := config.Load()
	logger.Init()
	defer logger.Sync()
	log := logger.Get()
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	api, err := mockapi.NewAPI(mockapi.Config{
		Secret:   []byte(cfg.MockJWTSecret),
		TokenTTL: cfg.MockTokenTTL,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("seeding mock api", zap.Error(err))
	}
	srv := server.NewServer(cfg, api, log).NewHTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("mock api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("mock api stopped")
}
