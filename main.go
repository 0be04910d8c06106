package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/petmeet/petmeet/config"
	"github.com/petmeet/petmeet/routes"
	"github.com/petmeet/petmeet/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		utils.Logger.Fatal("database init failed", zap.Error(err))
	}

	rc := utils.NewRedisClient(context.Background(), cfg)
	if rc != nil {
		defer rc.Close()
	}

	r := routes.SetupRouter(db, cfg, rc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
