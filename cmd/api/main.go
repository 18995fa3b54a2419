package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookshelf/cmd/api/book"
	"github.com/bookshelf/cmd/api/config"
	"github.com/bookshelf/cmd/api/database"
	"github.com/bookshelf/cmd/api/facade"
	bookhttp "github.com/bookshelf/cmd/api/http"
	"github.com/bookshelf/cmd/api/inmemory"
	"github.com/bookshelf/cmd/api/logging"
	"github.com/bookshelf/cmd/api/notifications"
	"github.com/bookshelf/cmd/api/redisstore"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	err := run()
	if err != nil {
		slog.Error("bookshelf stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Init(cfg.LogLevel)

	opener, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancelInit()
	bookshelf, err := book.NewBookshelf(opener, cfg.Collection).Init(initCtx)
	if err != nil {
		return fmt.Errorf("initializing bookshelf: %w", err)
	}
	defer func() {
		if err := bookshelf.Close(); err != nil {
			slog.Error("closing bookshelf", "err", err)
		}
	}()

	bookhttp.RequestTimeout = cfg.RequestTimeout
	bookhttp.NotificationTimeout = cfg.NotificationsTimeout
	notifier := notifications.NewNtfy(cfg.NotificationsEnabled, cfg.NotificationsBaseURL, nil)
	bookHandler := bookhttp.NewBookHandler(bookshelf, notifier)

	//create and init http server:
	server := bookhttp.NewServer(bookhttp.ServerConfig{Port: cfg.Port}, bookHandler)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", server.Addr, "backend", cfg.Backend, "collection", cfg.Collection)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("unexpected http server error: %w", err)
		}
		close(serverErr)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sc:
	case err := <-serverErr:
		return err
	}

	ctx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	slog.Info("graceful shutdown complete")
	return nil
}

/* Builds the store selected by the config. The returned func releases what the store holds. */
func openStore(cfg config.FileConfig) (facade.Opener, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		dbObject, err := database.ConnectDb(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting with db: %w", err)
		}

		//apply migrations:
		store := database.NewStore(dbObject)
		err = database.MigrationUp(store, cfg.MigrationsPath)
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			dbObject.Close()
			return nil, nil, fmt.Errorf("migrating: %w", err)
		}
		return store, func() { dbObject.Close() }, nil

	case config.BackendRedis:
		store, err := redisstore.NewStore(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("configuring redis: %w", err)
		}
		return store, func() {}, nil

	default:
		store, err := inmemory.NewInMemoryStore(cfg.Collection)
		if err != nil {
			return nil, nil, fmt.Errorf("creating in-memory store: %w", err)
		}
		return store, func() {}, nil
	}
}
