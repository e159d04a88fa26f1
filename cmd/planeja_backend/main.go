package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/adapters/mail"
	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
	"github.com/planejamais/planeja_mais/internal/core/services"
	"github.com/planejamais/planeja_mais/internal/handlers"
	"github.com/planejamais/planeja_mais/internal/middleware"
	"github.com/planejamais/planeja_mais/internal/platform/config"
	"github.com/planejamais/planeja_mais/internal/repositories/database/pgsql"
	"github.com/planejamais/planeja_mais/internal/utils"
	"github.com/planejamais/planeja_mais/pkg/database"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Planeja Mais API
// @version 1.0
// @description Backend of the Planeja Mais personal finance app.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mailer, closeMailer := newMailer(cfg, logger)
	defer closeMailer()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	// Amounts go over the wire as JSON numbers, as the web app expects.
	decimal.MarshalJSONWithoutQuotes = true

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), mailer)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newMailer publishes mails to RabbitMQ when AMQP_URL is set and only logs them otherwise.
func newMailer(cfg *config.Config, logger *slog.Logger) (notify.Mailer, func()) {
	if cfg.AMQPURL == "" {
		return mail.NewLogMailer(logger), func() {}
	}
	publisher, err := mail.NewPublisher(cfg.AMQPURL, cfg.MailExchange, cfg.MailQueue, logger)
	if err != nil {
		logger.Error("Failed to connect to the mail broker, falling back to logging mails", slog.String("error", err.Error()))
		return mail.NewLogMailer(logger), func() {}
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing mail publisher", slog.String("error", err.Error()))
		}
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// migrate needs a database/sql handle; pgx/v5/stdlib keeps the same driver as the pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
