package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/cmd"
	httpin "github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/in/http"
	postgresout "github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/jobs"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	if err := postgresout.AutoMigrate(gormDB); err != nil {
		logger.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	metrics.RegisterDefault()

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreatePullOrdersCommandHandler(),
		app.CreateOrderUoWFactory(),
		app.CreateProcessOrderCommandHandler(),
		configs.PullSchedule,
		configs.ProcessSchedule,
		configs.ProcessBatchLimit,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	return cmd.Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "8080"),
		DBHost:             envOrDefault("DB_HOST", "localhost"),
		DBPort:             envOrDefault("DB_PORT", "5432"),
		DBUser:             envOrDefault("DB_USER", "postgres"),
		DBPassword:         envOrDefault("DB_PASSWORD", "postgres"),
		DBName:             envOrDefault("DB_NAME", "fulfillment"),
		DBSslMode:          envOrDefault("DB_SSLMODE", "disable"),
		ProviderTimeout:    durationEnv(logger, "PROVIDER_TIMEOUT", 30*time.Second),
		LogisticsAccountID: envOrDefault("LOGISTICS_ACCOUNT_ID", "default"),
		PullSchedule:       envOrDefault("PULL_SCHEDULE", "0 */5 * * * *"),
		ProcessSchedule:    envOrDefault("PROCESS_SCHEDULE", "*/30 * * * * *"),
		ProcessBatchLimit:  intEnv(logger, "PROCESS_BATCH_LIMIT", 50),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn("Invalid duration value, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func intEnv(logger *slog.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("Invalid integer value, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateProcessOrderCommandHandler(),
		app.CreatePullOrdersCommandHandler(),
		app.CreateRefreshTrackingCommandHandler(),
		app.CreateGenerateBatchCommandHandler(),
		app.CreateCompleteBatchCommandHandler(),
		app.CreateRecordBatchUploadCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
		app.CreateGetBatchesQueryHandler(),
		app.CreateGetBatchOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
