package model

import (
	"strings"

	"meteobolt-bot/internal/domain"
)

// DefaultVisibility is used when the provider omits visibility (meters).
const DefaultVisibility = 10000

// WeatherReading is a normalized current-weather observation for one city.
// Readings are produced by the weather provider adapter and never mutated afterwards.
type WeatherReading struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"` // °C
	Description string  `json:"description"`
	Rain1h      float64 `json:"rain_1h"` // mm
	Snow1h      float64 `json:"snow_1h"` // mm
	Clouds      int     `json:"clouds"`  // percent
	Visibility  int     `json:"visibility"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
}

func NewWeatherReading(city string, temp float64, description string, rain, snow float64, clouds, visibility int, wind float64) (*WeatherReading, error) {
	if strings.TrimSpace(city) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if clouds < 0 || clouds > 100 {
		return nil, domain.ErrInvalidArgument
	}
	if rain < 0 || snow < 0 || wind < 0 || visibility < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &WeatherReading{
		City:        city,
		Temperature: temp,
		Description: description,
		Rain1h:      rain,
		Snow1h:      snow,
		Clouds:      clouds,
		Visibility:  visibility,
		WindSpeed:   wind,
	}, nil
}
