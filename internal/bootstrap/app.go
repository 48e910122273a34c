package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/profile"
	"resume-diagnostics/internal/resumes"
	"resume-diagnostics/internal/services/health"
	"resume-diagnostics/internal/shared/cache"
	"resume-diagnostics/internal/shared/config"
	"resume-diagnostics/internal/shared/server"
	"resume-diagnostics/internal/shared/storage/db"
	"resume-diagnostics/internal/shared/storage/object"
	localstore "resume-diagnostics/internal/shared/storage/object/local"
	s3store "resume-diagnostics/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Cache          *cache.Redis
	Engine         *diagnostics.Engine
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
	Health         *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL),
		Engine: engine,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Health:         app.Health,
		ResumesHandler: app.ResumesHandler,
	})

	return app, nil
}

func buildEngine(cfg config.Config) (*diagnostics.Engine, error) {
	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load analysis profile: %w", err)
	}
	engine, err := diagnostics.New(p)
	if err != nil {
		return nil, fmt.Errorf("build analysis engine: %w", err)
	}
	log.Printf("bootstrap: analysis profile %s", p.Version)
	return engine, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var repo resumes.Repo
	if app.DB != nil {
		repo = &resumes.PGRepo{DB: app.DB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	svc := &resumes.Service{
		Store:          app.Store,
		Repo:           repo,
		Engine:         app.Engine,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	if app.Cache.Enabled() {
		svc.Cache = app.Cache
	}

	app.ResumesRepo = repo
	app.ResumesService = svc
	app.ResumesHandler = resumes.NewHandler(svc)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Health = health.NewService(pinger, app.Cache, app.Engine.Profile().Version)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
