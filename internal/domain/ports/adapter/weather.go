package adapter

import (
	"context"

	"meteobolt-bot/internal/domain/model"
)

// WeatherProvider is the port for current-weather lookups by city name.
// Implementations return domain sentinel errors (ErrCityNotFound, ErrProviderStatus,
// ErrNetwork, ErrMalformedResponse) so callers can classify failures with errors.Is.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*model.WeatherReading, error)
}
