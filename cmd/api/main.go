package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"cardforge/internal/api"
	"cardforge/internal/config"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Str("service", "cardforge-api").Logger()

	h := api.NewServer(cfg, log)
	log.Info().Str("addr", cfg.APIAddr).Str("llm_providers", cfg.LLMProviders).Msg("cardforge api listening")
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal().Err(err).Msg("api server exited")
	}
}
