package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"meteobolt-bot/internal/domain/model"
	"meteobolt-bot/internal/domain/ports/adapter"
	"meteobolt-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.WeatherProvider = (*WeatherCache)(nil)

// WeatherCache decorates a WeatherProvider and keeps successful readings for ttl.
// Failures are never cached so a typo can be retried right away.
type WeatherCache struct {
	inner  adapter.WeatherProvider
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewWeatherCache(inner adapter.WeatherProvider, client RedisClient, ttl time.Duration, logger *zerolog.Logger) *WeatherCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &WeatherCache{inner: inner, client: client, ttl: ttl, log: logger}
}

// weatherKey treats "Tel-Aviv" and "tel aviv" as one city, the same way the
// provider fallback does.
func weatherKey(city string) string {
	city = strings.ReplaceAll(city, "-", " ")
	return "weather:" + strings.ToLower(strings.Join(strings.Fields(city), " "))
}

func (c *WeatherCache) CurrentWeather(ctx context.Context, city string) (*model.WeatherReading, error) {
	key := weatherKey(city)

	val, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		var reading model.WeatherReading
		if jsonErr := json.Unmarshal([]byte(val), &reading); jsonErr == nil {
			metrics.IncCacheRequest("weather", "hit")
			return &reading, nil
		}
		metrics.IncCacheRequest("weather", "error")
	case errors.Is(err, Nil):
		metrics.IncCacheRequest("weather", "miss")
	default:
		metrics.IncCacheRequest("weather", "error")
		if c.log != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("weather cache read failed")
		}
	}

	reading, err := c.inner.CurrentWeather(ctx, city)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(reading); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl); err != nil && c.log != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("weather cache write failed")
		}
	}
	return reading, nil
}

// Invalidate drops cached readings for the given cities.
func (c *WeatherCache) Invalidate(ctx context.Context, cities ...string) error {
	if len(cities) == 0 {
		return nil
	}
	keys := make([]string, 0, len(cities))
	for _, city := range cities {
		keys = append(keys, weatherKey(city))
	}
	return c.client.Del(ctx, keys...)
}
