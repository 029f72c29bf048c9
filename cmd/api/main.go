package main

import (
	"smg-portal/internal/app"
	"smg-portal/internal/bootstrap"
	"smg-portal/internal/config"
	"smg-portal/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	infra, err := app.Connect(cfg, logger, true)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	// build dependency + routes
	if err := app.BuildApp(r, infra, auditLogger); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	if err := bootstrap.StartHTTPServer(
		r,
		bootstrap.DefaultServerConfig(cfg.Port, cfg.HandlerTimeout),
		auditLogger,
	); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
