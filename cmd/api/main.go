package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tevirein/todo-auth/internal/database"
	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/repository"
	"github.com/tevirein/todo-auth/internal/server"
	"github.com/tevirein/todo-auth/internal/service"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			logger.Error("Error closing database connection pool", zap.Error(err))
		}
	}

	logger.Info("Server exiting")
	done <- true
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbService := database.New()
	gormDB := dbService.GetDB()

	if err := gormDB.AutoMigrate(&domain.Account{}, &domain.Task{}); err != nil {
		logger.Fatal("Failed to auto-migrate database", zap.Error(err))
	}

	accountRepo := repository.NewGormAccountRepository(gormDB)
	taskRepo := repository.NewGormTaskRepository(gormDB)

	authService := service.NewAuthService(accountRepo)
	taskService := service.NewTaskService(taskRepo)

	apiServer := server.NewServer(authService, taskService, dbService, logger)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, logger, done)

	logger.Info("Starting server", zap.String("addr", apiServer.Addr))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server ListenAndServe error", zap.Error(err))
	}

	<-done
	logger.Info("Graceful shutdown complete")
}
