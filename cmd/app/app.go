package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"personalblog/internal/config"
	"personalblog/internal/database"
	handlers "personalblog/internal/handler"
	"personalblog/internal/mail"
	"personalblog/internal/repository"
	"personalblog/internal/service"
	"personalblog/internal/storage"
)

// App connects the database and object storage and wires every layer.
func App(ctx context.Context, cfg *config.Config) (*database.DB, *handlers.Handlers, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := db.RunMigrations(ctx); err != nil {
		db.CloseDB()
		return nil, nil, err
	}

	// connection MinIO, optional
	var store storage.Storage
	if cfg.MinIO.Enabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			db.CloseDB()
			return nil, nil, fmt.Errorf("failed to initialize MinIO: %w", err)
		}
		store = minioClient
	} else {
		log.Println("MINIO_ENDPOINT not set, cover uploads disabled")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, db, store, mail.NewSMTPSender(cfg.SMTP))

	h, err := handlers.NewHandlers(services, cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, err
	}

	return db, h, nil
}

func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	return db.RunMigrations(ctx)
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, addr string) error {
	db, h, err := App(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	server := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server started on %s", addr)
		log.Printf("Database: %s (%s)", cfg.DB.DbNAME, cfg.DB.Driver)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
