package application_test

import (
	"strings"
	"testing"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/domain/model"
	"meteobolt-bot/internal/infra/i18n"
)

func newTestComposer(t *testing.T, lang string) *application.Composer {
	t.Helper()
	tr, err := i18n.Load(lang)
	if err != nil {
		t.Fatalf("load %s translations: %v", lang, err)
	}
	return application.NewComposer(tr)
}

func TestComposer_Detailed(t *testing.T) {
	c := newTestComposer(t, "en")
	got := c.Detailed(moscow())
	want := "🌡 Weather in Moscow\n" +
		"Temperature: 3.2°C\n" +
		"Description: light rain\n" +
		"\n" +
		"⚙️ Meteobolt status:\n" +
		"BOLT WET — RAINING\n" +
		"BOLT CASTS NO SHADOW — CLOUDY\n" +
		"BOLT VISIBLE — NO FOG\n" +
		"BOLT NOT SWAYING — CALM"
	if got != want {
		t.Fatalf("unexpected detailed message:\n%s", got)
	}
}

func TestComposer_TemperatureOneDecimal(t *testing.T) {
	c := newTestComposer(t, "en")
	r := moscow()
	r.Temperature = -7
	if got := c.InlineSummary(r); got != "-7.0°C, light rain" {
		t.Fatalf("unexpected summary %q", got)
	}
	if !strings.Contains(c.Detailed(r), "Temperature: -7.0°C") {
		t.Fatalf("detailed message should carry one decimal place")
	}
}

func TestComposer_Compact(t *testing.T) {
	c := newTestComposer(t, "en")
	r := moscow()
	r.Snow1h = 0.3
	got := c.Compact(r)
	want := "🔩 Meteobolt: Moscow\n\n" + strings.Join(application.FormatBoltStatus(r), "\n")
	if got != want {
		t.Fatalf("unexpected compact message:\n%s", got)
	}
	if strings.Contains(got, "3.2") {
		t.Fatalf("compact body must not include the temperature")
	}
}

func TestComposer_Failure(t *testing.T) {
	c := newTestComposer(t, "en")
	tests := []struct {
		kind model.FailureKind
		want string
	}{
		{model.FailureNotFound, "❌ City not found. Try the English spelling of the name."},
		{model.FailureProvider, "❌ Failed to get weather data."},
		{model.FailureNetwork, "❌ Could not reach the weather service."},
		{model.FailureUnexpected, "❌ An unexpected error occurred."},
		{model.FailureNone, "❌ An unexpected error occurred."},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := c.Failure(tt.kind); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposer_RussianLocale(t *testing.T) {
	c := newTestComposer(t, "ru")
	got := c.Detailed(moscow())
	if !strings.HasPrefix(got, "🌡 Погода в городе Moscow\n") {
		t.Fatalf("unexpected ru header: %q", got)
	}
	// bolt lines are fixed vocabulary and never translated
	if !strings.HasSuffix(got, application.BoltCalm) {
		t.Fatalf("bolt lines should stay literal: %q", got)
	}
}

func TestComposer_Greeting(t *testing.T) {
	c := newTestComposer(t, "en")
	if got := c.Greeting("bolt_bot"); !strings.Contains(got, "@bolt_bot City") {
		t.Fatalf("greeting should mention inline usage, got %q", got)
	}
	if got := c.Greeting(""); strings.Contains(got, "%!") {
		t.Fatalf("greeting with empty username is malformed: %q", got)
	}
}
