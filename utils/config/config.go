package config

import (
	"errors"
	"io/fs"
	"time"

	"foxholewar/api/warapi"
	"foxholewar/utils/requests"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	ENV_SHARD          = "FOXHOLE_SHARD"
	ENV_TIMEOUT        = "FOXHOLE_TIMEOUT"
	ENV_BASE_URL       = "FOXHOLE_BASE_URL"
	ENV_DB_DIR         = "FOXHOLE_DB_DIR"
	ENV_WEBHOOK_URL    = "FOXHOLE_WEBHOOK_URL"
	ENV_WATCH_SCHEDULE = "FOXHOLE_WATCH_SCHEDULE"
	ENV_LOG_LEVEL      = "LOG_LEVEL"
)

const (
	DEFAULT_DB_DIR         = "./db"
	DEFAULT_WATCH_SCHEDULE = "@every 5m"
)

type Config struct {
	Shard         warapi.Shard
	Timeout       time.Duration
	BaseURL       string // Overrides the shard URL, e.g. for a proxy. Empty uses the shard.
	DBDir         string
	WebhookURL    string // Empty disables Discord notifications.
	WatchSchedule string
	LogLevel      log.Level
}

// Loads variables from the .env file at path if it exists. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// Builds a Config from the environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	shardStr, err := GetEnviroVarOr(ENV_SHARD, string(warapi.DEFAULT_SHARD))
	if err != nil {
		return nil, err
	}

	shard, err := warapi.ParseShard(shardStr)
	if err != nil {
		return nil, err
	}

	timeout, err := GetEnviroVarOr(ENV_TIMEOUT, requests.DEFAULT_TIMEOUT)
	if err != nil {
		return nil, err
	}

	baseURL, _ := GetEnviroVarOr(ENV_BASE_URL, "")
	dbDir, _ := GetEnviroVarOr(ENV_DB_DIR, DEFAULT_DB_DIR)
	webhook, _ := GetEnviroVarOr(ENV_WEBHOOK_URL, "")
	schedule, _ := GetEnviroVarOr(ENV_WATCH_SCHEDULE, DEFAULT_WATCH_SCHEDULE)

	levelStr, _ := GetEnviroVarOr(ENV_LOG_LEVEL, log.InfoLevel.String())
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		Shard:         shard,
		Timeout:       timeout,
		BaseURL:       baseURL,
		DBDir:         dbDir,
		WebhookURL:    webhook,
		WatchSchedule: schedule,
		LogLevel:      level,
	}, nil
}
