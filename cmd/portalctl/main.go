package main

import (
	"context"
	"os"

	"smg-portal/internal/shared/apperror"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	apperror.Init()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
