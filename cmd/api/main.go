// Command api levanta el servicio HTTP de gestión de usuarios.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ug-competencias/backend/internal/bootstrap"
	"github.com/ug-competencias/backend/internal/cache/cachefactory"
	"github.com/ug-competencias/backend/internal/config"
	"github.com/ug-competencias/backend/internal/guard"
	adminctrl "github.com/ug-competencias/backend/internal/http/controllers/admin"
	authctrl "github.com/ug-competencias/backend/internal/http/controllers/auth"
	healthctrl "github.com/ug-competencias/backend/internal/http/controllers/health"
	"github.com/ug-competencias/backend/internal/http/router"
	adminsvc "github.com/ug-competencias/backend/internal/http/services/admin"
	authsvc "github.com/ug-competencias/backend/internal/http/services/auth"
	jwtx "github.com/ug-competencias/backend/internal/jwt"
	"github.com/ug-competencias/backend/internal/metrics"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store"
)

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta al config.yaml")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" && fileExists(*flagEnvFile) {
		if err := godotenv.Load(*flagEnvFile); err == nil {
			log.Printf("dotenv: cargado %s", *flagEnvFile)
		}
	}

	cfgPath := *flagConfig
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" && fileExists("config.yaml") {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.Named("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	stores, err := store.Open(ctx, cfg)
	if err != nil {
		lg.Fatal("store open failed", logger.Err(err))
	}
	defer func() { _ = stores.Close() }()

	if cfg.Storage.AutoMigrate {
		n, err := stores.Migrate(ctx)
		if err != nil {
			lg.Fatal("migrate failed", logger.Err(err))
		}
		lg.Info("schema ready", logger.Int("migrations", n))
	}

	// Seed admin
	if cfg.Seed.Enabled {
		seed := bootstrap.AdminSeed{
			Nombre:   cfg.Seed.AdminNombre,
			Correo:   cfg.Seed.AdminCorreo,
			Password: cfg.Seed.AdminPassword,
		}
		if err := bootstrap.EnsureAdmin(ctx, stores.Users, seed); err != nil {
			lg.Fatal("admin seed failed", logger.Err(err))
		}
	}

	// Cache
	cacheCfg := cachefactory.Config{Kind: cfg.Cache.Kind}
	cacheCfg.Redis.Addr = cfg.Cache.Redis.Addr
	cacheCfg.Redis.Password = cfg.Cache.Redis.Password
	cacheCfg.Redis.DB = cfg.Cache.Redis.DB
	cacheCfg.Redis.Prefix = cfg.Cache.Redis.Prefix
	cacheCfg.Memory.DefaultTTL = cfg.Cache.Memory.DefaultTTL
	principalCache, closeCache, err := cachefactory.Open(cacheCfg)
	if err != nil {
		lg.Fatal("cache open failed", logger.Err(err))
	}
	defer func() { _ = closeCache() }()

	// Tokens + guard
	issuer, err := jwtx.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret))
	if err != nil {
		lg.Fatal("jwt issuer failed", logger.Err(err))
	}
	if ttl := cfg.AccessTTL(); ttl > 0 {
		issuer = issuer.WithAccessTTL(ttl)
	}
	g := guard.New(issuer, stores.Users, principalCache)

	// Métricas
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler, err = metrics.Register(metrics.Config{PgPool: stores.PgPool})
		if err != nil {
			lg.Fatal("metrics register failed", logger.Err(err))
		}
	}

	// Services y controllers
	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Users: stores.Users, Issuer: issuer})
	registerSvc := authsvc.NewRegisterService(authsvc.RegisterDeps{
		Users:         stores.Users,
		AllowedDomain: cfg.Register.AllowedEmailDomain,
	})
	usersSvc := adminsvc.NewUsersService(adminsvc.UsersDeps{Users: stores.Users, Guard: g})

	handler := router.New(router.Deps{
		Guard:          g,
		Auth:           authctrl.NewControllers(loginSvc, registerSvc),
		Admin:          adminctrl.NewUsersController(usersSvc),
		Health:         healthctrl.NewHealthController(stores.Users, cfg.App.Version),
		MetricsHandler: metricsHandler,
		CORSOrigins:    cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		lg.Info("listening", logger.String("addr", cfg.Server.Addr), logger.String("driver", strings.ToLower(cfg.Storage.Driver)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-grpCtx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		lg.Info("shutting down")
		return srv.Shutdown(shCtx)
	})

	if err := grp.Wait(); err != nil {
		lg.Fatal("server error", logger.Err(err))
	}
	lg.Info("bye")
}
