package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	envFile := flag.String("env-file", "configs/.env", "Optional .env file loaded outside production")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	instance, err := app.New(bootCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	if err := instance.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}
