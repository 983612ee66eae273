package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/autoscribeHQ/autoscribe/internal/config"
	"github.com/autoscribeHQ/autoscribe/internal/db"
	"github.com/autoscribeHQ/autoscribe/internal/recorder"
	"github.com/autoscribeHQ/autoscribe/internal/storage"
	"github.com/autoscribeHQ/autoscribe/internal/tasks"
)

func main() {
	concurrency := flag.Int("concurrency", 5, "number of concurrent task handlers")
	flag.Parse()

	log.Println("Starting Autoscribe worker")

	cfg := config.Load()

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[STARTUP] db: %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("[STARTUP] migrate: %v", err)
	}

	store := recorder.NewStore(database.DB)

	artifacts, err := storage.New(cfg.ArtifactBucketURL)
	if err != nil {
		log.Fatalf("[STARTUP] artifact storage: %v", err)
	}
	defer artifacts.Close()
	log.Printf("[WORKER] artifact storage: %s (%s)", cfg.ArtifactBucketURL, artifacts.GetType())

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: *concurrency,
			Queues: map[string]int{
				tasks.QueueRecordings:  5,
				tasks.QueueMaintenance: 1,
			},
			ShutdownTimeout: 30 * time.Second,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRecordingArchive, handleRecordingArchive(store, artifacts))
	mux.HandleFunc(tasks.TypeRecordingCleanup, handleRecordingCleanup(store))

	// Daily retention sweep.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	cleanupTask, err := tasks.NewRecordingCleanupTask(tasks.RecordingCleanupPayload{RetentionDays: cfg.RetentionDays})
	if err != nil {
		log.Fatalf("[STARTUP] cleanup task: %v", err)
	}
	if _, err := scheduler.Register("@every 24h", cleanupTask); err != nil {
		log.Fatalf("[STARTUP] register cleanup schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[WORKER] scheduler stopped: %v", err)
		}
	}()

	log.Printf("[WORKER] concurrency=%d redis=%s", *concurrency, cfg.RedisAddr)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("[WORKER] server stopped: %v", err)
	}
}

// handleRecordingArchive uploads a finished recording's script to
// artifact storage and marks the row archived.
func handleRecordingArchive(store *recorder.Store, artifacts storage.Provider) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.RecordingArchivePayload
		if err := payload.Unmarshal(t.Payload()); err != nil {
			return err
		}

		rec, err := store.GetRecording(ctx, payload.RecordingID)
		if err != nil {
			return err
		}
		if rec.Status == recorder.StatusArchived {
			return nil // already done, redelivery is harmless
		}
		if rec.Script == "" {
			log.Printf("[ARCHIVE] recording %s has no script, skipping", rec.ID)
			return nil
		}

		key := storage.ScriptKey(rec.ID.String())
		if err := artifacts.Put(ctx, key, strings.NewReader(rec.Script), "text/javascript"); err != nil {
			return err
		}
		if err := store.MarkArchived(ctx, rec.ID, key); err != nil {
			return err
		}

		log.Printf("[ARCHIVE] recording %s -> %s", rec.ID, key)
		return nil
	}
}

// handleRecordingCleanup removes archived recordings past retention.
func handleRecordingCleanup(store *recorder.Store) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.RecordingCleanupPayload
		if err := payload.Unmarshal(t.Payload()); err != nil {
			return err
		}
		if payload.RetentionDays <= 0 {
			payload.RetentionDays = 30
		}

		cutoff := time.Now().AddDate(0, 0, -payload.RetentionDays)
		removed, err := store.DeleteArchivedBefore(ctx, cutoff)
		if err != nil {
			return err
		}

		log.Printf("[CLEANUP] removed %d recordings older than %s", removed, cutoff.Format(time.RFC3339))
		return nil
	}
}
