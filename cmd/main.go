package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/db"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/task"
	"taskboard/internal/web"
	"taskboard/middleware"
)

var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB, cfg.DatabaseName)
	userRepo := repoFactory.NewUserRepository()
	taskRepo := repoFactory.NewTaskRepository()

	dbManager := db.NewDBManager()
	defer dbManager.Stop()

	tokenService := auth.NewTokenService(cfg.JwtKey)
	authService := auth.NewService(userRepo, tokenService, dbManager)
	taskService := task.NewService(taskRepo, dbManager)

	authHandlers := auth.NewAuthHandlers(authService)
	taskHandlers := task.NewTaskHandlers(taskService)
	mw := middleware.NewMiddleware(authService)

	webHandler := web.NewWebHandler(authService, taskService, cfg.SessionSecret)
	router := webHandler.SetupRoutes(mw, authHandlers, taskHandlers)

	handler := middleware.LoggingMiddleware(middleware.SetupCORS()(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		os.Exit(1)
	}
	infoLogger.Println("Server stopped")
}
