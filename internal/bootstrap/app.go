package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/ai/openai"
	"resumind-backend/internal/identity"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/shared/config"
	"resumind-backend/internal/shared/server"
	"resumind-backend/internal/shared/storage/blob"
	localstore "resumind-backend/internal/shared/storage/blob/local"
	s3store "resumind-backend/internal/shared/storage/blob/s3"
	"resumind-backend/internal/shared/storage/db"
	"resumind-backend/internal/shared/storage/kv"
	"resumind-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Blob    blob.Store
	KV      kv.Store
	Records *resumes.RecordStore
	Runner  *resumes.Runner
	Handler *resumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.BlobStoreType) == "" {
		cfg.BlobStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	kvStore := buildKV(sqlDB)

	client, err := buildAI(cfg)
	if err != nil {
		return nil, err
	}

	records := resumes.NewRecordStore(kvStore)
	runner := resumes.NewRunner(store, records, client)
	handler := resumes.NewHandler(runner, records, store)

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Blob:    store,
		KV:      kvStore,
		Records: records,
		Runner:  runner,
		Handler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Sessions:      identity.StaticSessions{Token: cfg.APIToken},
		ResumeHandler: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db", map[string]any{"mode": "memory", "reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.db", map[string]any{"mode": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	switch cfg.BlobStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildKV(sqlDB *sql.DB) kv.Store {
	if sqlDB != nil {
		return &kv.PGStore{DB: sqlDB}
	}
	return kv.NewMemoryStore()
}

func buildAI(cfg config.Config) (ai.Client, error) {
	if cfg.AIProvider == "openai" {
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.AIModel)
	}
	return ai.PlaceholderClient{}, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
