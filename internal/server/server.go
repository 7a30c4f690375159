package server

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"go.uber.org/zap"

	"github.com/tevirein/todo-auth/internal/database"
	"github.com/tevirein/todo-auth/internal/service"
)

type Server struct {
	port      int
	auth      service.AuthService
	tasks     service.TaskService
	db        database.Service
	sessions  *sessionManager
	templates *template.Template
	logger    *zap.Logger
}

func newServer(auth service.AuthService, tasks service.TaskService, dbService database.Service, logger *zap.Logger) *Server {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-only-insecure-secret"
		logger.Warn("SESSION_SECRET not set, using an insecure default")
	}

	return &Server{
		auth:      auth,
		tasks:     tasks,
		db:        dbService,
		sessions:  newSessionManager([]byte(secret)),
		templates: parseTemplates(),
		logger:    logger,
	}
}

func NewServer(auth service.AuthService, tasks service.TaskService, dbService database.Service, logger *zap.Logger) *http.Server {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Warn("invalid PORT environment variable, using default 8080", zap.String("port", portStr))
		port = 8080
	}

	appServer := newServer(auth, tasks, dbService, logger)
	appServer.port = port

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
