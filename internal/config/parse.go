package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

// Parse reads configuration from the environment. A .env file in the
// working directory is loaded first when present; running without one
// is the normal deployed case.
func Parse() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slogx.Debug(context.Background(), "no .env file loaded", slogx.Err(err))
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	return cfg, nil
}
