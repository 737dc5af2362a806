package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trivia-quiz/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Game  Game `yaml:"game"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
}

// Game holds the settings screen defaults and the countdown tick.
type Game struct {
	Difficulty      string `yaml:"difficulty"`
	Rounds          int    `yaml:"rounds"`
	SecondsPerRound int    `yaml:"secondsPerRound"`
	TickInterval    string `yaml:"tickInterval"`
}

// Default mirrors the settings a fresh install starts with.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Game = Game{
		Difficulty:      string(domain.Normal),
		Rounds:          10,
		SecondsPerRound: 10,
		TickInterval:    "1s",
	}
	cfg.Redis.TTL = "30m"
	cfg.Bank.TTL = "10m"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SessionConfig turns the game defaults into a session configuration.
func (g Game) SessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		Difficulty:      domain.ParseDifficulty(g.Difficulty),
		RoundCount:      g.Rounds,
		SecondsPerRound: g.SecondsPerRound,
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
