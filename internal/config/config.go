// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every tunable the process reads at startup.
type Config struct {
	RedisAddr     string        // empty disables the Redis backend
	RedisPassword string
	RedisDB       int
	SQLitePath    string        // empty disables the SQLite backend
	LogLevel      logrus.Level
	BotDelay      time.Duration // pause between bot actions, for watchability
	PlayerName    string
}

// Load reads the environment, after sourcing .env if one exists. A
// missing .env file is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg := Config{
		RedisAddr:     os.Getenv("TRANCA_REDIS_ADDR"),
		RedisPassword: os.Getenv("TRANCA_REDIS_PASSWORD"),
		RedisDB:       envInt("TRANCA_REDIS_DB", 0),
		SQLitePath:    os.Getenv("TRANCA_SQLITE_PATH"),
		LogLevel:      envLevel("TRANCA_LOG_LEVEL", logrus.InfoLevel),
		BotDelay:      envDuration("TRANCA_BOT_DELAY", 600*time.Millisecond),
		PlayerName:    envString("TRANCA_PLAYER_NAME", "Você"),
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("invalid integer in environment, using default")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("invalid duration in environment, using default")
		return fallback
	}
	return d
}

func envLevel(key string, fallback logrus.Level) logrus.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	lvl, err := logrus.ParseLevel(v)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("invalid log level in environment, using default")
		return fallback
	}
	return lvl
}
