// Command migrate aplica el schema contra el storage configurado.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ug-competencias/backend/internal/config"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store"
)

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta al config.yaml")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		if st, err := os.Stat(*flagEnvFile); err == nil && !st.IsDir() {
			_ = godotenv.Load(*flagEnvFile)
		}
	}

	cfgPath := *flagConfig
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "migrate"})
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	stores, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = stores.Close() }()

	n, err := stores.Migrate(ctx)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrate: %d scripts aplicados (driver=%s)", n, cfg.Storage.Driver)
}
