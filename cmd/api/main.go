package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/alessiogreco/weekblocks/config"
	"github.com/alessiogreco/weekblocks/internal/adapters/cache"
	adapterHTTP "github.com/alessiogreco/weekblocks/internal/adapters/handler/http"
	"github.com/alessiogreco/weekblocks/internal/adapters/repository"
	"github.com/alessiogreco/weekblocks/internal/core/domain"
	"github.com/alessiogreco/weekblocks/internal/core/services"
	"github.com/alessiogreco/weekblocks/internal/core/timeutil"
	"github.com/alessiogreco/weekblocks/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		store domain.TrackerStore
		db    *sqlx.DB
		rdb   *redis.Client
		err   error
	)

	switch cfg.Storage.Backend {
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		log.Println("Connecting to database...")
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		pgStore := repository.NewPostgresTrackerStore(db, cfg.Storage.StorageKey)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("Critical: %v", err)
		}
		store = pgStore
		log.Println("Database connected successfully.")

	case "redis":
		rdb, err = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Critical: %v", err)
		}
		store = repository.NewRedisTrackerStore(rdb, cfg.Storage.StorageKey)
		log.Println("Redis store ready.")

	default:
		store = repository.NewInMemoryTrackerStore()
		log.Println("No persistent backend configured, tracker state is in-memory only.")
	}

	// Rate limiting reuses redis when present, regardless of store backend.
	if rdb == nil && cfg.Storage.Backend != "redis" {
		if client, rerr := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB); rerr == nil {
			rdb = client
		} else {
			log.Printf("Redis unavailable, rate limiting disabled: %v", rerr)
		}
	}

	clock := domain.SystemClock{}

	saver := workers.NewSaveWorker(store)
	saver.Start(ctx)

	trackerService := services.NewTrackerService(store, clock, saver)
	trackerService.Load(ctx)

	birthdate, err := timeutil.ParseISO(cfg.Countdown.BirthdateISO)
	if err != nil {
		log.Fatalf("Critical: invalid BIRTHDATE %q, expected YYYY-MM-DD", cfg.Countdown.BirthdateISO)
	}
	countdownService := services.NewCountdownService(birthdate, cfg.Countdown.LifespanYears, clock)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		TrackerHandler:   adapterHTTP.NewTrackerHandler(trackerService),
		CountdownHandler: adapterHTTP.NewCountdownHandler(countdownService),
		DB:               db,
		Redis:            rdb,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Weekblocks engine running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
