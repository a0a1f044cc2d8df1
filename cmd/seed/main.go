// Command seed garantiza la cuenta admin en el storage configurado.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ug-competencias/backend/internal/bootstrap"
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

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "seed"})
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	stores, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = stores.Close() }()

	seed := bootstrap.AdminSeed{
		Nombre:   cfg.Seed.AdminNombre,
		Correo:   cfg.Seed.AdminCorreo,
		Password: cfg.Seed.AdminPassword,
	}
	if err := bootstrap.EnsureAdmin(ctx, stores.Users, seed); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: cuenta admin %s garantizada", cfg.Seed.AdminCorreo)
}
