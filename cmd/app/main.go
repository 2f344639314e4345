package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"team-roster-service/internal/config"
	"team-roster-service/internal/database"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/events"
	"team-roster-service/internal/handler"
	"team-roster-service/internal/identity"
	"team-roster-service/internal/repository"
	"team-roster-service/internal/repository/mongostore"
	"team-roster-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type repositories struct {
	users      domain.UserRepository
	teams      domain.TeamRepository
	activities domain.ActivityRepository
	close      func()
}

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown log level %q, using info", cfg.LogLevel)
	}

	// Хранилище
	repos, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Store initialization failed: %v", err)
	}
	defer repos.close()

	// События
	var publisher domain.EventPublisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatalf("Event publisher initialization failed: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		logger.Info("AMQP_URL is empty, domain events are disabled")
	}

	// Идентификация
	tokens := identity.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL())
	hasher := identity.NewBcryptHasher(0)

	// Use Cases
	teamUC := usecase.NewTeamUseCase(repos.teams, repos.users, repos.activities, publisher)
	activityUC := usecase.NewActivityUseCase(repos.activities, repos.teams, repos.users, publisher)
	userUC := usecase.NewUserUseCase(repos.users, repos.teams, hasher, tokens, publisher, logger)

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(teamUC, activityUC, userUC, cfg.AuthCookieName, tokens.TTL(), logger)
	handler.RegisterHandlers(e, apiHandler, tokens, cfg.AuthCookieName)

	apiDoc, err := handler.LoadAPIDoc(context.Background())
	if err != nil {
		logger.Fatalf("API document is invalid: %v", err)
	}
	if err := handler.RegisterDocs(e, apiDoc); err != nil {
		logger.Fatalf("API document registration failed: %v", err)
	}

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
		return
	}

	logger.Info("Server exited")
}

func openStore(cfg config.Config, logger *logrus.Logger) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info("MongoDB connected")

		return &repositories{
			users:      mongostore.NewUserRepository(db),
			teams:      mongostore.NewTeamRepository(db),
			activities: mongostore.NewActivityRepository(db),
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil

	default:
		// База данных (database/sql)
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected")

		queries := database.New(db)
		return &repositories{
			users:      repository.NewUserRepository(queries),
			teams:      repository.NewTeamRepository(db, queries),
			activities: repository.NewActivityRepository(db, queries),
			close: func() {
				_ = db.Close()
			},
		}, nil
	}
}
