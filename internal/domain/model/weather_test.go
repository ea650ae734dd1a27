//go:build !integration

package model

import (
	"errors"
	"testing"

	"meteobolt-bot/internal/domain"
)

func TestNewWeatherReading(t *testing.T) {
	t.Run("should build a reading", func(t *testing.T) {
		r, err := NewWeatherReading("Moscow", 3.2, "light rain", 0.5, 0, 80, 5000, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.City != "Moscow" || r.Clouds != 80 || r.Visibility != 5000 {
			t.Errorf("unexpected reading: %+v", r)
		}
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		cases := []struct {
			name   string
			city   string
			clouds int
			rain   float64
		}{
			{"empty city", " ", 10, 0},
			{"clouds above 100", "Oslo", 101, 0},
			{"negative clouds", "Oslo", -1, 0},
			{"negative rain", "Oslo", 10, -0.1},
		}
		for _, c := range cases {
			_, err := NewWeatherReading(c.city, 1, "x", c.rain, 0, c.clouds, 1000, 1)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("%s: expected ErrInvalidArgument, got %v", c.name, err)
			}
		}
	})
}

func TestQueryResult(t *testing.T) {
	ok := Success(&WeatherReading{City: "Oslo"})
	if !ok.OK() {
		t.Fatalf("expected success result to be OK")
	}

	failed := Failed(FailureNetwork, errors.New("dial tcp: timeout"))
	if failed.OK() || failed.Reading != nil {
		t.Fatalf("expected failed result without reading")
	}
	if failed.Failure.String() != "network_error" {
		t.Errorf("unexpected failure label %q", failed.Failure.String())
	}

	if got := Failed(FailureNone, nil).Failure; got != FailureUnexpected {
		t.Errorf("Failed with FailureNone should degrade to unexpected, got %v", got)
	}
}
