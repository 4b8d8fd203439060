// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	apprecommendation "github.com/nutriplan/v1/internal/application/recommendation"
	appsafety "github.com/nutriplan/v1/internal/application/safety"
	"github.com/nutriplan/v1/internal/infrastructure/ai"
	"github.com/nutriplan/v1/internal/infrastructure/ai/ollama"
	"github.com/nutriplan/v1/internal/infrastructure/ai/openai"
	"github.com/nutriplan/v1/internal/infrastructure/cache"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/server"
	gormRepo "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
	redisCache "github.com/nutriplan/v1/internal/infrastructure/persistence/redis"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutriplan/v1/internal/infrastructure/retrieval"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// AI provider modules
	AIModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite database with GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogLevel(cfg.Database.LogLevel)
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

func gormLogLevel(level string) gormLogger.LogLevel {
	switch level {
	case "info":
		return gormLogger.Info
	case "warn":
		return gormLogger.Warn
	case "error":
		return gormLogger.Error
	default:
		return gormLogger.Silent
	}
}

// CacheModule provides the byte cache, Redis when configured, in-process
// otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository(), nil
		}
		return redisCache.NewCacheRepository(redisCache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		}, log)
	},
)

// RepositoryModule provides repository implementations. The advice
// repository is the GORM store wrapped by the cache-first decorator.
var RepositoryModule = fx.Provide(
	func(db *gorm.DB, byteCache outbound.CacheRepository, cfg *config.Config, log *zap.Logger) outbound.MedicalAdviceRepository {
		store := gormRepo.NewMedicalAdviceRepository(db)
		return cache.NewMedicalAdviceRepository(store, byteCache, cfg.Advice.CacheTTL, log)
	},
	fx.Annotate(
		gormRepo.NewProfileRepository,
		fx.As(new(outbound.ProfileRepository)),
	),
)

// AIModule provides the chat backend and the providers built on it
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) ai.ChatClient {
		openaiClient := openai.NewClient(openai.Config{
			APIKey:  cfg.AI.OpenAIKey,
			BaseURL: cfg.AI.OpenAIBaseURL,
			Model:   cfg.AI.OpenAIModel,
			Timeout: cfg.AI.Timeout,
		}, log)
		ollamaClient := ollama.NewClient(ollama.Config{
			BaseURL: cfg.AI.OllamaHost,
			Model:   cfg.AI.OllamaModel,
			Timeout: cfg.AI.Timeout,
		}, log)

		if cfg.AI.Provider == "ollama" {
			return ai.NewService(ollamaClient, nil, log)
		}
		return ai.NewService(openaiClient, ollamaClient, log)
	},
	func(log *zap.Logger) outbound.DocumentRetriever {
		return retrieval.NewMemoryRetriever(retrieval.SeedDocuments(), log)
	},
	fx.Annotate(
		ai.NewIntentParser,
		fx.As(new(outbound.IntentParser)),
	),
	fx.Annotate(
		ai.NewMedicalConstraintProvider,
		fx.As(new(outbound.MedicalConstraintProvider)),
	),
	fx.Annotate(
		ai.NewRecipeProvider,
		fx.As(new(outbound.RecipeProvider)),
	),
	fx.Annotate(
		ai.NewSemanticChecker,
		fx.As(new(outbound.SemanticChecker)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	appsafety.NewFilter,
	apprecommendation.NewPipeline,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriPlan application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriPlan application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
