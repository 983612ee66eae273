package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// OutputPath is the live script document the renderer publishes
	// into while a session runs.
	OutputPath string

	// TemplatePath overrides the embedded code skeleton; empty keeps
	// the default.
	TemplatePath string

	// ArtifactBucketURL is where the worker uploads finished scripts:
	// file:///var/lib/autoscribe/artifacts or s3://bucket?region=...
	ArtifactBucketURL string

	// RetentionDays bounds how long archived recordings are kept.
	RetentionDays int
}

func Load() Config {
	cfg := Config{
		Port:              8710,
		DatabaseURL:       getenv("DATABASE_URL", "autoscribe.db"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           0,
		OutputPath:        getenv("AUTOSCRIBE_OUTPUT_PATH", "recording.spec.js"),
		TemplatePath:      os.Getenv("AUTOSCRIBE_TEMPLATE_PATH"),
		ArtifactBucketURL: getenv("AUTOSCRIBE_ARTIFACT_BUCKET", "file:///var/lib/autoscribe/artifacts"),
		RetentionDays:     30,
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if v := os.Getenv("AUTOSCRIBE_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.RetentionDays = days
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
