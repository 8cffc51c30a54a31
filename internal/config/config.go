package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath    = "quiz.db"
	defaultTimeLimit = 30
	defaultTick      = time.Second
)

// Config holds the settings shared by every quiz-cli command.
type Config struct {
	DatabasePath string
	TimeLimit    int
	Tick         time.Duration
	Player       string
}

// Load reads an optional .env file, then lets environment variables provide
// defaults that command-line flags override.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring unreadable .env file: %v", err)
	}

	timeLimit, err := envInt("QUIZ_TIME_LIMIT", defaultTimeLimit)
	if err != nil {
		return nil, err
	}
	tick, err := envDuration("QUIZ_TICK", defaultTick)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.DatabasePath, "db", envString("QUIZ_DB_PATH", defaultDBPath), "path to the local attempt history database")
	fs.IntVar(&cfg.TimeLimit, "time-limit", timeLimit, "time units allowed per question")
	fs.DurationVar(&cfg.Tick, "tick", tick, "length of one time unit")
	fs.StringVar(&cfg.Player, "player", "", "only show history for this player")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %d", cfg.TimeLimit)
	}
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %s", cfg.Tick)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return value, nil
}
