package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bikeshop/configurator-service/internal/app/configurator/config"
	"bikeshop/configurator-service/internal/app/configurator/engine"
	"bikeshop/configurator-service/internal/app/configurator/handler"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/configurator-service/internal/app/configurator/service"
	"bikeshop/configurator-service/internal/app/configurator/util"
	"bikeshop/pkg/logger"
)

const serviceName = "configurator-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.LogLevel)
	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		}
	}

	// Цены отдаются в JSON числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	// === POSTGRESQL ===
	// Один пул pgx: категории работают с ним напрямую, остальное через gorm
	pool, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	gormDB, err := openGorm(pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize gorm")
	}
	if err := repository.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	// === MONGODB ===
	mongoClient, err := connectMongoDB(cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	// === REDIS ===
	// Кеш категорий и черный список токенов Auth Service
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	// === KAFKA ===
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")

	// === РЕПОЗИТОРИИ ===
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(gormDB)
	optionGroupRepo := repository.NewOptionGroupRepository(gormDB)
	optionRepo := repository.NewOptionRepository(gormDB)
	ruleRepo := repository.NewOptionRuleRepository(gormDB)
	priceRuleRepo := repository.NewOptionPriceRuleRepository(gormDB)
	cartRepo := repository.NewCartRepository(mongoClient.Database(cfg.Mongo.Database))

	// === СЕРВИСЫ ===
	var validatorOpts []engine.ValidatorOption
	if cfg.Configurator.SingleOptionPerGroup {
		validatorOpts = append(validatorOpts, engine.WithGroupPolicy(engine.SingleChoicePerGroup{}))
		logger.Info().Msg("Single option per group policy enabled")
	}

	configurationService := service.NewConfigurationService(
		repository.NewConfigurationRepository(gormDB),
		engine.NewValidator(validatorOpts...),
	)
	catalogService := service.NewCatalogService(
		categoryRepo,
		productRepo,
		optionGroupRepo,
		redisClient,
		cfg.Redis.CacheTTL,
		kafkaProducer,
	)
	optionService := service.NewOptionService(optionRepo, optionGroupRepo, kafkaProducer)
	ruleService := service.NewRuleService(ruleRepo, priceRuleRepo, optionRepo, kafkaProducer)
	cartService := service.NewCartService(cartRepo, configurationService)

	// === HTTP ===
	router := handler.SetupRoutes(handler.Handlers{
		Configuration: handler.NewConfigurationHandler(configurationService),
		Catalog:       handler.NewCatalogHandler(catalogService),
		Option:        handler.NewOptionHandler(optionService),
		Rule:          handler.NewRuleHandler(ruleService),
		Cart:          handler.NewCartHandler(cartService),
	}, handler.NewAuthMiddleware(cfg.JWT.Secret, redisClient))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Configurator Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Configurator Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Configurator Service stopped gracefully")
}

// connectDB пул pgx с 10 попытками, пока PostgreSQL поднимается в Docker
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
	}

	return pool, nil
}

// openGorm поднимает gorm поверх уже открытого пула pgx
func openGorm(pool *pgxpool.Pool) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}

func connectMongoDB(cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, clientOptions)
		cancel()
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()
			if err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
