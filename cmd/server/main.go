package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gallery-backend/internal/config"
	"github.com/ignatzorin/gallery-backend/internal/db"
	httpHandlers "github.com/ignatzorin/gallery-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/gallery-backend/internal/http/router"
	"github.com/ignatzorin/gallery-backend/internal/logger"
	"github.com/ignatzorin/gallery-backend/internal/repository"
	"github.com/ignatzorin/gallery-backend/internal/service"
	"github.com/ignatzorin/gallery-backend/internal/storage"
	"github.com/ignatzorin/gallery-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Выбираем хранилище: JSON файлы или PostgreSQL.
	var (
		itemStore    service.ItemPersistence
		sessionStore service.SessionPersistence
		dbConn       *sqlx.DB
	)

	switch cfg.StorageBackend {
	case "postgres":
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}

		itemStore = repository.NewItemRepository(dbConn)
		sessionStore = repository.NewSessionRepository(dbConn)
	default:
		fileStore, err := storage.NewFileStore(cfg.StoragePath)
		if err != nil {
			log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
		}
		itemStore = fileStore
		sessionStore = fileStore
	}

	// Вебсокеты: события об изменениях галереи.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Сервисы.
	itemService := service.NewItemService(itemStore, hub)
	itemService.Init(ctx)

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(sessionStore, tokenManager, cfg.AdminEmails, cfg.SessionTTL, cfg.MagicLinkTTL)
	authService.Resolve(ctx)

	// HTTP хэндлеры.
	itemHandler := httpHandlers.NewItemHandler(itemService)
	authHandler := httpHandlers.NewAuthHandler(authService, cfg.Env)
	wsHandler := httpHandlers.NewWSHandler(hub)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, itemHandler, authHandler, wsHandler, healthHandler, tokenManager, authService)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
