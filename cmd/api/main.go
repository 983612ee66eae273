package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/autoscribeHQ/autoscribe/internal/codegen"
	"github.com/autoscribeHQ/autoscribe/internal/config"
	"github.com/autoscribeHQ/autoscribe/internal/db"
	"github.com/autoscribeHQ/autoscribe/internal/recorder"
	"github.com/autoscribeHQ/autoscribe/internal/router"
	"github.com/autoscribeHQ/autoscribe/internal/tasks"
)

// @title           Autoscribe API
// @version         1.0
// @description     Autoscribe records live browser sessions and continuously regenerates an editable Playwright test script from the captured events.

// @host      localhost:8710
// @BasePath  /api/v1

func main() {
	cfg := config.Load()
	log.Printf("Starting Autoscribe API server on port %d", cfg.Port)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("Database ready")

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	sink, err := codegen.NewFileSink(cfg.OutputPath)
	if err != nil {
		log.Fatalf("output document: %v", err)
	}
	log.Printf("Live script document: %s", sink.Path())

	mgr := recorder.NewManager(recorder.ManagerOptions{
		Store:        recorder.NewStore(database.DB),
		Tasks:        tasks.NewClient(taskClient),
		Sink:         sink,
		TemplatePath: cfg.TemplatePath,
	})

	r := router.New(database, mgr, redisOpt)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: r,
	}

	go func() {
		log.Printf("API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()

	log.Printf("Graceful shutdown...")

	// An in-flight recording gets its final render pass before the
	// process exits.
	if _, err := mgr.Stop(context.Background()); err != nil && err != recorder.ErrNoSession {
		log.Printf("Error stopping active session: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
