package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/domain"
	"meteobolt-bot/internal/domain/model"
	"meteobolt-bot/internal/domain/ports/adapter"
	"meteobolt-bot/internal/infra/metrics"
)

// Compile-time check
var _ adapter.WeatherProvider = (*OpenWeatherMapClient)(nil)

const currentWeatherPath = "/data/2.5/weather"

// maxBodyBytes bounds how much of a provider response is decoded.
const maxBodyBytes = 1 << 20

// OpenWeatherMapClient fetches current weather by city name.
type OpenWeatherMapClient struct {
	webClient *http.Client
	endpoint  string
	apiKey    string
	units     string
	lang      string
}

func NewOpenWeatherMapClient(cfg config.WeatherConfig) (*OpenWeatherMapClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("weather api key is empty")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid weather base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherMapClient{
		webClient: &http.Client{Timeout: timeout},
		endpoint:  base.String() + currentWeatherPath,
		apiKey:    cfg.APIKey,
		units:     cfg.Units,
		lang:      cfg.Lang,
	}, nil
}

// owmResponse mirrors the fields we read from /data/2.5/weather. Pointers tell
// "absent" apart from zero so required fields can be enforced.
type owmResponse struct {
	Name *string `json:"name"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow *struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
	Clouds *struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Visibility *int `json:"visibility"`
	Wind       *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// CurrentWeather looks the city up once. A 404 for a hyphenated name such as
// "Tel-Aviv" is retried exactly once as "Tel Aviv".
func (c *OpenWeatherMapClient) CurrentWeather(ctx context.Context, city string) (*model.WeatherReading, error) {
	reading, err := c.fetch(ctx, city)
	if errors.Is(err, domain.ErrCityNotFound) && strings.Contains(city, "-") {
		metrics.IncHyphenRetry()
		return c.fetch(ctx, strings.ReplaceAll(city, "-", " "))
	}
	return reading, err
}

func (c *OpenWeatherMapClient) fetch(ctx context.Context, city string) (*model.WeatherReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}
	q := req.URL.Query()
	q.Add("q", city)
	q.Add("appid", c.apiKey)
	q.Add("units", c.units)
	q.Add("lang", c.lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	response, err := c.webClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetwork, redactKey(err.Error(), c.apiKey))
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %q", domain.ErrCityNotFound, city)
	case response.StatusCode < 200 || response.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderStatus, response.StatusCode)
	}

	var resp owmResponse
	if err := json.NewDecoder(io.LimitReader(response.Body, maxBodyBytes)).Decode(&resp); err != nil {
		// The client timeout also covers the body; a stalled read is a transport failure.
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: read body: %s", domain.ErrNetwork, redactKey(err.Error(), c.apiKey))
		}
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrMalformedResponse, err)
	}
	return resp.toReading()
}

func (r *owmResponse) toReading() (*model.WeatherReading, error) {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.Main == nil || r.Main.Temp == nil {
		missing = append(missing, "main.temp")
	}
	if len(r.Weather) == 0 || r.Weather[0].Description == nil {
		missing = append(missing, "weather[0].description")
	}
	if r.Clouds == nil || r.Clouds.All == nil {
		missing = append(missing, "clouds.all")
	}
	if r.Wind == nil || r.Wind.Speed == nil {
		missing = append(missing, "wind.speed")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedResponse, strings.Join(missing, ", "))
	}

	var rain, snow float64
	if r.Rain != nil {
		rain = r.Rain.OneHour
	}
	if r.Snow != nil {
		snow = r.Snow.OneHour
	}
	visibility := model.DefaultVisibility
	if r.Visibility != nil {
		visibility = *r.Visibility
	}

	reading, err := model.NewWeatherReading(*r.Name, *r.Main.Temp, *r.Weather[0].Description,
		rain, snow, *r.Clouds.All, visibility, *r.Wind.Speed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return reading, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// redactKey keeps the API key out of errors that embed the request URL.
func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "***")
}
