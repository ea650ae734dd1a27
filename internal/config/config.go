package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev     bool
	Version string
	Commit  string
}

type BotConfig struct {
	Token      string `yaml:"token"`
	Mode       string `yaml:"mode"`        // webhook | polling
	WebhookURL string `yaml:"webhook_url"` // public base URL, e.g. https://bolt.example.com
	SetWebhook bool   `yaml:"set_webhook"` // register {webhook_url}{http.webhook_path} on startup
	Username   string `yaml:"username"`
	Workers    int    `yaml:"workers"`
	QueueSize  int    `yaml:"queue_size"`
	Locale     string `yaml:"locale"` // en | ru
}

type WeatherConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Units   string        `yaml:"units"`
	Lang    string        `yaml:"lang"`
	Timeout time.Duration `yaml:"timeout"`
}

type InlineConfig struct {
	CacheTime int    `yaml:"cache_time"` // seconds
	ThumbURL  string `yaml:"thumb_url"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	WebhookPath     string        `yaml:"webhook_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig is optional; an empty URL disables rate limiting and the weather cache.
type RedisConfig struct {
	URL       string        `yaml:"url"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	TTL       time.Duration `yaml:"ttl"`
	RateLimit int           `yaml:"rate_limit"` // lookups per user per minute
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.URL) != "" }

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Weather WeatherConfig `yaml:"weather"`
	Inline  InlineConfig  `yaml:"inline"`
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path, applies environment overrides
// and defaults, then validates. A missing file is not an error.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	cfg.Runtime.Dev = dev

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("TELEGRAM_BOT_TOKEN"); ok {
		cfg.Bot.Token = v
	}
	if v, ok := lookup("WEATHER_API_KEY"); ok {
		cfg.Weather.APIKey = v
	}
	if v, ok := lookup("WEBHOOK_URL"); ok {
		cfg.Bot.WebhookURL = v
	}
	if v, ok := lookup("BOT_MODE"); ok {
		cfg.Bot.Mode = v
	}
	if v, ok := lookup("REDIS_URL"); ok {
		cfg.Redis.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		cfg.HTTP.Port = port
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "webhook"
	}
	cfg.Bot.Mode = strings.ToLower(cfg.Bot.Mode)
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.QueueSize <= 0 {
		cfg.Bot.QueueSize = 100
	}
	if cfg.Bot.Locale == "" {
		cfg.Bot.Locale = "en"
	}
	cfg.Bot.WebhookURL = strings.TrimRight(cfg.Bot.WebhookURL, "/")

	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.Weather.Units == "" {
		cfg.Weather.Units = "metric"
	}
	if cfg.Weather.Lang == "" {
		cfg.Weather.Lang = "ru"
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 10 * time.Second
	}

	if cfg.Inline.CacheTime <= 0 {
		cfg.Inline.CacheTime = 300
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 10000
	}
	if cfg.HTTP.WebhookPath == "" {
		cfg.HTTP.WebhookPath = "/webhook"
	}
	if !strings.HasPrefix(cfg.HTTP.WebhookPath, "/") {
		cfg.HTTP.WebhookPath = "/" + cfg.HTTP.WebhookPath
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}

	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Redis.RateLimit <= 0 {
		cfg.Redis.RateLimit = 20
	}
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" && !c.Runtime.Dev {
		return errors.New("bot.token is required (TELEGRAM_BOT_TOKEN)")
	}
	if c.Weather.APIKey == "" {
		return errors.New("weather.api_key is required (WEATHER_API_KEY)")
	}
	switch c.Bot.Mode {
	case "webhook", "polling":
	default:
		return fmt.Errorf("bot.mode must be webhook or polling, got %q", c.Bot.Mode)
	}
	if c.Bot.SetWebhook && c.Bot.WebhookURL == "" {
		return errors.New("bot.webhook_url is required when bot.set_webhook is true")
	}
	return nil
}

// WebhookEndpoint is the public URL Telegram should push updates to.
func (c *Config) WebhookEndpoint() string {
	return c.Bot.WebhookURL + c.HTTP.WebhookPath
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Minute
	}
	return d
}
