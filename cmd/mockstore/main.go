package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/raushankrgupta/storefront-seeder/api"
	"github.com/raushankrgupta/storefront-seeder/config"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := utils.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	server, err := api.NewServer(api.NewStore(api.DefaultCategories), cfg.Username, cfg.Password, []byte(cfg.JWTSecret))
	if err != nil {
		zap.S().Fatalf("Failed to create mock storefront: %v", err)
	}

	addr := ":" + cfg.Port
	zap.S().Infof("Mock storefront starting on port %s...", cfg.Port)
	zap.S().Infof("Usage: SEED_API_URL=http://localhost:%s/api go run .", cfg.Port)
	if err := http.ListenAndServe(addr, server.Routes("/api")); err != nil {
		zap.S().Fatalf("Server failed to start: %v", err)
	}
}
