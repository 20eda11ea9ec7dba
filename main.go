// @title Tangle Play API
// @version 1.0
// @description Backend for the Tangle Play children's puzzle platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"tangle_play_backend/internal/app"
	"tangle_play_backend/internal/config"
	"tangle_play_backend/pkg/configwatcher"
	"tangle_play_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migrations finished, exiting")
		return
	}

	// hot-reload the sections read per request; everything else needs a
	// restart
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		current := raw.(*config.Config)
		fresh, err := config.LoadConfig("configs")
		if err != nil {
			logger.Log.Error("config reload failed", zap.Error(err))
			return
		}
		current.JWT = fresh.JWT
		current.Storage = fresh.Storage
	})

	application.Run()
}
