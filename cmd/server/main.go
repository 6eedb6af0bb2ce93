package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/cache"
	"github.com/fadilmartias/cold-mailer/internal/config"
	"github.com/fadilmartias/cold-mailer/internal/domain/fiber/handler"
	"github.com/fadilmartias/cold-mailer/internal/middleware"
	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/repository"
	"github.com/fadilmartias/cold-mailer/internal/service"
	"github.com/fadilmartias/cold-mailer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	llmConfig := config.LoadLLMConfig()
	portfolioConfig := config.LoadPortfolioConfig()
	redisConfig := config.LoadRedisConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db := ConnectDB(portfolioConfig)

	llm, err := newLLM(ctx, llmConfig)
	if err != nil {
		log.Fatal(err)
	}
	embedder, err := newEmbedder(ctx, llmConfig)
	if err != nil {
		log.Fatal(err)
	}

	var store repository.VectorStore
	switch portfolioConfig.VectorStore {
	case config.VectorStoreMemory:
		store = repository.NewMemoryVectorStore()
	default:
		store = repository.NewPortfolioVectorRepository(db)
	}

	portfolioTable := repository.NewPortfolioCSVRepository(portfolioConfig.CSVPath)
	index := service.NewPortfolioIndexService(store, embedder, portfolioTable, portfolioConfig.DefaultNResults)
	if err := index.Load(ctx); err != nil {
		log.Fatalf("Could not load portfolio from %s: %v", portfolioTable.Path(), err)
	}

	jobCache := cache.NewRedis(redisConfig)
	defer jobCache.Close()

	taskRepo := repository.NewOutreachTaskRepository(db)
	outreachUC := usecase.NewOutreachUsecase(
		taskRepo,
		service.NewJobExtractorService(llm),
		index,
		service.NewEmailComposerService(llm),
		service.NewPageLoaderService(llmConfig.RequestTimeout),
		llm,
		config.LoadMailerConfig(),
	).WithCache(jobCache, redisConfig.TTL)
	portfolioUC := usecase.NewPortfolioUsecase(index)

	handler.NewOutreachHandler(outreachUC).RegisterRoutes(app)
	handler.NewPortfolioHandler(portfolioUC).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newLLM(ctx context.Context, llmConfig *config.LLMConfig) (service.LLMServiceInterface, error) {
	switch llmConfig.Provider {
	case config.LLMProviderOpenRouter:
		return service.NewOpenRouterService(config.LoadOpenRouterConfig(), llmConfig), nil
	case config.LLMProviderGemini:
		return service.NewGeminiService(ctx, config.LoadGeminiConfig(), llmConfig)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", llmConfig.Provider)
	}
}

func newEmbedder(ctx context.Context, llmConfig *config.LLMConfig) (service.EmbedderInterface, error) {
	switch llmConfig.EmbeddingProvider {
	case config.EmbeddingProviderKeyword:
		return service.NewKeywordEmbedder(llmConfig.KeywordDimensions), nil
	case config.EmbeddingProviderGemini:
		return service.NewGeminiService(ctx, config.LoadGeminiConfig(), llmConfig)
	default:
		return nil, fmt.Errorf("unknown EMBEDDING_PROVIDER %q", llmConfig.EmbeddingProvider)
	}
}

func ConnectDB(portfolioConfig *config.PortfolioConfig) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	models := []any{&model.OutreachTask{}}
	if portfolioConfig.VectorStore != config.VectorStoreMemory {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			log.Fatal("could not enable pgvector: ", err)
		}
		models = append(models, &model.PortfolioDocument{})
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
