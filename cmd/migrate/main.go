package main

import (
	"fmt"
	"os"

	"smg-portal/internal/config"
	"smg-portal/internal/shared/connection"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate up|down|drop|version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}
	if err := connection.RunMigration(os.Args[1], cfg.Database.URL()); err != nil {
		logger.Fatal("migration failed", zap.String("action", os.Args[1]), zap.Error(err))
	}
}
