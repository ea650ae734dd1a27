package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"meteobolt-bot/internal/config"
	tele "meteobolt-bot/internal/infra/adapters/telegram"
	"meteobolt-bot/internal/infra/redis"
)

// This script prepares a predictable state for manual end-to-end testing:
// cached readings for the test cities are dropped and the webhook is
// (re)registered, or removed with -delete.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	del := flag.Bool("delete", false, "remove the webhook instead of registering it")
	cities := flag.String("cities", "Moscow,Tel Aviv,London", "comma-separated cities whose cached weather is dropped")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("--- Starting E2E Environment Setup ---")

	// 1. Drop cached weather so the first lookup hits the provider.
	if cfg.Redis.Enabled() {
		log.Println("[1/3] Dropping cached weather readings...")
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisClient.Close()

		cache := redis.NewWeatherCache(nil, redisClient, cfg.Redis.TTL, nil)
		if err := cache.Invalidate(ctx, splitCities(*cities)...); err != nil {
			log.Fatalf("failed to drop cached weather: %v", err)
		}
	} else {
		log.Println("[1/3] Redis disabled, nothing cached")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	// 2. Register or remove the webhook.
	if *del {
		log.Println("[2/3] Removing webhook...")
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
			log.Fatalf("delete webhook: %v", err)
		}
	} else {
		if cfg.Bot.WebhookURL == "" {
			log.Fatalf("bot.webhook_url (WEBHOOK_URL) is required to register the webhook")
		}
		log.Printf("[2/3] Registering webhook %s ...", cfg.WebhookEndpoint())
		if err := tele.SetWebhook(bot, cfg.WebhookEndpoint()); err != nil {
			log.Fatalf("%v", err)
		}
	}

	// 3. Show what Telegram now has on record.
	info, err := bot.GetWebhookInfo()
	if err != nil {
		log.Fatalf("get webhook info: %v", err)
	}
	log.Printf("[3/3] webhook url=%q pending=%d last_error=%q", info.URL, info.PendingUpdateCount, info.LastErrorMessage)

	log.Println("--- ✅ E2E Environment Setup Complete ---")
}

func splitCities(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
