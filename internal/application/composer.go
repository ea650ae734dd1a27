package application

import (
	"strings"

	"meteobolt-bot/internal/domain/model"
)

// Translator is satisfied by *i18n.Translator.
type Translator interface {
	T(key string, args ...interface{}) string
}

// Composer renders readings and failures into chat text.
type Composer struct {
	tr Translator
}

func NewComposer(tr Translator) *Composer {
	return &Composer{tr: tr}
}

// Detailed is the direct-message reply: header, temperature, description,
// blank line, then the bolt status block.
func (c *Composer) Detailed(r model.WeatherReading) string {
	var sb strings.Builder
	sb.WriteString(c.tr.T("weather.header", r.City))
	sb.WriteByte('\n')
	sb.WriteString(c.tr.T("weather.temperature", r.Temperature))
	sb.WriteByte('\n')
	sb.WriteString(c.tr.T("weather.description", r.Description))
	sb.WriteString("\n\n")
	sb.WriteString(c.tr.T("weather.bolt_header"))
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(FormatBoltStatus(r), "\n"))
	return sb.String()
}

// Compact is the inline result body. Temperature and description go into
// InlineSummary instead.
func (c *Composer) Compact(r model.WeatherReading) string {
	return c.tr.T("weather.compact_header", r.City) + "\n\n" + strings.Join(FormatBoltStatus(r), "\n")
}

func (c *Composer) InlineSummary(r model.WeatherReading) string {
	return c.tr.T("weather.summary", r.Temperature, r.Description)
}

func (c *Composer) InlineTitle(r model.WeatherReading) string {
	return c.tr.T("inline.title", r.City)
}

func (c *Composer) InlineErrorDescription() string {
	return c.tr.T("inline.error_description")
}

// Failure is the user-facing text for a failed lookup. It never includes the
// underlying error.
func (c *Composer) Failure(kind model.FailureKind) string {
	var key string
	switch kind {
	case model.FailureNotFound:
		key = "failure.not_found"
	case model.FailureProvider:
		key = "failure.provider"
	case model.FailureNetwork:
		key = "failure.network"
	default:
		key = "failure.unexpected"
	}
	return c.tr.T("failure.prefix", c.tr.T(key))
}

func (c *Composer) Greeting(botUsername string) string {
	if botUsername == "" {
		botUsername = "meteobolt_bot"
	}
	return c.tr.T("greeting", botUsername)
}

func (c *Composer) RateLimited() string {
	return c.tr.T("failure.prefix", c.tr.T("rate_limited"))
}
