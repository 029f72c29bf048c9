package main

import (
	"smg-portal/internal/app"
	"smg-portal/internal/bootstrap"
	"smg-portal/internal/config"
	"smg-portal/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	infra, err := app.Connect(cfg, logger, false)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	if err := app.RunScheduler(infra); err != nil {
		logger.Fatal("run scheduler failed", zap.Error(err))
	}
}
