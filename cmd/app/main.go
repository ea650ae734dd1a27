// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/domain/ports/adapter"
	tele "meteobolt-bot/internal/infra/adapters/telegram"
	"meteobolt-bot/internal/infra/adapters/weather"
	"meteobolt-bot/internal/infra/i18n"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/infra/metrics"
	red "meteobolt-bot/internal/infra/redis"
	"meteobolt-bot/internal/infra/webhook"
	"meteobolt-bot/internal/infra/worker"
	"meteobolt-bot/internal/usecase"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = ""
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "developer mode: console logs, no Telegram token required")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Runtime.Version, cfg.Runtime.Commit = version, commit

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()
	metrics.SetBuildInfo(cfg.Runtime.Version, cfg.Runtime.Commit)
	logger.Info().
		Str("version", cfg.Runtime.Version).
		Str("mode", cfg.Bot.Mode).
		Bool("dev", cfg.Runtime.Dev).
		Str("weather_key", logging.Redact(cfg.Weather.APIKey, cfg.Runtime.Dev)).
		Msg("starting meteobolt")

	// ---- Translations ----
	tr, err := i18n.Load(cfg.Bot.Locale)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	if tr.Lang() != cfg.Bot.Locale {
		logger.Warn().Str("requested", cfg.Bot.Locale).Str("using", tr.Lang()).Msg("locale not found, falling back")
	}

	// ---- Weather provider (+ optional redis cache) ----
	owm, err := weather.NewOpenWeatherMapClient(cfg.Weather)
	if err != nil {
		logger.Fatal().Err(err).Msg("weather client")
	}
	var provider adapter.WeatherProvider = owm

	var limiter *red.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer func() { _ = redisClient.Close() }()
		provider = red.NewWeatherCache(owm, redisClient, cfg.Redis.TTL, logger)
		limiter = red.NewRateLimiter(redisClient)
		logger.Info().Dur("ttl", cfg.Redis.TTL).Int("rate_limit", cfg.Redis.RateLimit).Msg("redis cache and rate limiter enabled")
	}

	// ---- Use case + facade ----
	weatherUC := usecase.NewWeatherUseCase(provider, logger)
	facade := application.NewBotFacade(weatherUC, application.NewComposer(tr))

	// ---- Telegram ----
	var (
		api    *tgbotapi.BotAPI
		sender adapter.TelegramSender
	)
	if cfg.Bot.Token != "" {
		api, err = tgbotapi.NewBotAPI(cfg.Bot.Token)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		if cfg.Bot.Username == "" {
			cfg.Bot.Username = api.Self.UserName
		}
		sender = api
		logger.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")
	} else {
		sender = tele.NewNoopSender(logger)
		logger.Warn().Msg("no bot token; using noop telegram sender")
	}

	pool := worker.NewPool(cfg.Bot.Workers, cfg.Bot.QueueSize, logger)
	pool.Start(ctx)

	bot, err := tele.NewBot(sender, facade, pool, cfg.Bot, cfg.Inline, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram bot")
	}
	if limiter != nil {
		bot.WithRateLimiter(limiter, cfg.Redis.RateLimit)
	}

	// ---- HTTP intake ----
	srv := webhook.NewServer(bot, cfg.HTTP, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	switch cfg.Bot.Mode {
	case "polling":
		if api == nil {
			logger.Fatal().Msg("polling mode needs a bot token")
		}
		go func() {
			if err := tele.StartPolling(ctx, api, bot); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("telegram polling stopped")
				cancel()
			}
		}()
	default:
		if cfg.Bot.SetWebhook {
			if err := tele.SetWebhook(sender, cfg.WebhookEndpoint()); err != nil {
				logger.Fatal().Err(err).Msg("set webhook")
			}
			logger.Info().Str("url", cfg.WebhookEndpoint()).Msg("webhook registered")
		} else {
			logger.Info().Str("path", cfg.HTTP.WebhookPath).Msg("waiting for webhook deliveries; register the webhook with Telegram manually")
		}
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	pool.Stop()
	logger.Info().Msg("bye")
}
