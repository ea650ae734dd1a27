package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/infra/adapters/weather"
	"meteobolt-bot/internal/infra/i18n"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/usecase"
)

// demo runs one lookup through the same pipeline the bot uses and prints the
// reply to stdout. Only WEATHER_API_KEY is needed.
func main() {
	city := flag.String("city", "Moscow", "city to look up")
	compact := flag.Bool("compact", false, "print the inline (compact) body instead of the direct-message reply")
	lang := flag.String("locale", "", "message locale (en|ru); defaults to bot.locale")
	flag.Parse()

	_ = godotenv.Load()

	// dev=true: no Telegram token required
	cfg, err := config.LoadConfig(os.Getenv("METEOBOLT_CONFIG"), true)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *lang != "" {
		cfg.Bot.Locale = *lang
	}

	logger := logging.New(cfg.Log, true)

	tr, err := i18n.Load(cfg.Bot.Locale)
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}
	owm, err := weather.NewOpenWeatherMapClient(cfg.Weather)
	if err != nil {
		log.Fatalf("weather client: %v", err)
	}

	facade := application.NewBotFacade(usecase.NewWeatherUseCase(owm, logger), application.NewComposer(tr))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Weather.Timeout*2+time.Second)
	defer cancel()

	if *compact {
		articles, res := facade.HandleInline(ctx, *city)
		if res.Err != nil {
			logger.Debug().Err(res.Err).Str("failure", res.Failure.String()).Msg("lookup failed")
		}
		for _, a := range articles {
			fmt.Printf("[%s] %s | %s\n\n%s\n", a.ID, a.Title, a.Description, a.Body)
		}
		return
	}

	text, res := facade.HandleCity(ctx, *city)
	if res.Err != nil {
		logger.Debug().Err(res.Err).Str("failure", res.Failure.String()).Msg("lookup failed")
	}
	fmt.Println(text)
	if !res.OK() {
		os.Exit(1)
	}
}
