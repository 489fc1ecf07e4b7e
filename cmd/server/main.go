package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/pflag"

	httpadapter "cv-generator/internal/adapter/http"
	"cv-generator/internal/config"
	"cv-generator/internal/logger"
	"cv-generator/internal/render"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"
	"cv-generator/pkg/ai"
	infra "cv-generator/pkg/infrastructure"
	"cv-generator/pkg/reader"
)

func main() {
	var configPath string
	pflag.StringVar(&configPath, "config", "config.yaml", "path to the yaml config file")
	pflag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})

	gemini, err := ai.NewClient(ai.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout(),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client setup failed")
	}

	fetcher := reader.NewClient(cfg.Reader.BaseURL, cfg.Reader.Timeout())
	layout := infra.NewChromedpLayout(cfg.Render.ChromePath)
	sessions := store.NewMemoryStore()
	extractor := usecase.NewExtractor(fetcher, gemini, sessions, log)

	app := fiber.New(fiber.Config{AppName: "cv-generator"})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.CORSOrigins, ","),
		AllowCredentials: true,
	}))
	app.Use(httpadapter.RequestLogger(log))

	h := httpadapter.NewHandler(extractor, sessions, layout,
		render.Options{SkillsSeparator: cfg.Render.SkillsSeparator}, log)
	h.Register(app)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
