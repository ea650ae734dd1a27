// File: internal/usecase/weather_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meteobolt-bot/internal/domain"
	"meteobolt-bot/internal/domain/model"
	"meteobolt-bot/internal/domain/ports/adapter"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ WeatherUseCase = (*weatherUC)(nil)

type WeatherUseCase interface {
	// Lookup never returns a Go error: every outcome is folded into the result.
	Lookup(ctx context.Context, city string) model.QueryResult
}

type weatherUC struct {
	provider adapter.WeatherProvider
	log      *zerolog.Logger
}

func NewWeatherUseCase(provider adapter.WeatherProvider, logger *zerolog.Logger) *weatherUC {
	return &weatherUC{provider: provider, log: logger}
}

func (w *weatherUC) Lookup(ctx context.Context, city string) model.QueryResult {
	defer logging.TraceDuration(w.log, "WeatherUC.Lookup")()

	city = strings.TrimSpace(city)
	if city == "" {
		return model.Failed(model.FailureNotFound, fmt.Errorf("%w: empty city", domain.ErrInvalidArgument))
	}

	start := time.Now()
	reading, err := w.provider.CurrentWeather(ctx, city)
	var res model.QueryResult
	switch {
	case err == nil && reading != nil:
		res = model.Success(reading)
	case err == nil:
		res = model.Failed(model.FailureUnexpected, errors.New("provider returned no reading"))
	default:
		res = model.Failed(Classify(err), err)
	}
	metrics.ObserveWeatherLookup(res.Failure.String(), time.Since(start))
	return res
}

// Classify maps provider errors onto the failure taxonomy. Malformed
// responses and anything unrecognised are unexpected.
func Classify(err error) model.FailureKind {
	switch {
	case err == nil:
		return model.FailureNone
	case errors.Is(err, domain.ErrCityNotFound):
		return model.FailureNotFound
	case errors.Is(err, domain.ErrProviderStatus):
		return model.FailureProvider
	case errors.Is(err, domain.ErrNetwork):
		return model.FailureNetwork
	default:
		return model.FailureUnexpected
	}
}
