package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"art-auction-api/internal/config"
	"art-auction-api/internal/controller"
	"art-auction-api/internal/repo"
	"art-auction-api/internal/scheduler"
	"art-auction-api/internal/service"
	"art-auction-api/pkg/http_server"
	"art-auction-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/redis/go-redis/v9"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string, sourceDir string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://"+sourceDir, databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func connectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func Run() {
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	cfg := config.Load()

	logger.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresURL)
	if err != nil {
		logger.Fatalf("Error occurred while connecting to db: %v", err)
	}
	defer postgresDB.Close()

	logger.Println("Running migrations...")
	runMigrations(postgresDB, cfg.DatabaseName, cfg.MigrationsDir)

	logger.Println("Connecting redis...")
	redisClient, err := connectRedis(cfg)
	if err != nil {
		logger.Fatalf("Error occurred while connecting to redis: %v", err)
	}
	defer redisClient.Close()

	repositories := repo.NewRepositories(postgresDB, redisClient, cfg.EventTTL)
	services := service.NewServices(repositories, logger)
	handler := echo.New()

	logger.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services, cfg.StripeWebhookSecret)

	logger.Println("Starting auction reconciler...")
	reconciler := scheduler.New(services.Auction, cfg.ReconcileInterval, logger)
	reconciler.Start()

	logger.Println("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	logger.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		logger.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		logger.Fatalf("Notify error: %v", err)
	}

	logger.Println("Shutting down...")
	reconciler.Stop()

	err = httpServer.Shutdown()
	if err != nil {
		logger.Fatalf("Shutdown error: %v", err)
	} else {
		logger.Println("Successful shutdown")
	}
}
