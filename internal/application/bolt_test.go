package application_test

import (
	"reflect"
	"testing"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/domain/model"
)

func moscow() model.WeatherReading {
	return model.WeatherReading{
		City:        "Moscow",
		Temperature: 3.2,
		Description: "light rain",
		Rain1h:      0.5,
		Clouds:      80,
		Visibility:  5000,
		WindSpeed:   2,
	}
}

func contains(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}

func TestFormatBoltStatus_Moscow(t *testing.T) {
	got := application.FormatBoltStatus(moscow())
	want := []string{
		"BOLT WET — RAINING",
		"BOLT CASTS NO SHADOW — CLOUDY",
		"BOLT VISIBLE — NO FOG",
		"BOLT NOT SWAYING — CALM",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines:\n got %q\nwant %q", got, want)
	}
}

func TestFormatBoltStatus_RainIsExclusive(t *testing.T) {
	for _, rain := range []float64{0, 0.01, 3} {
		r := moscow()
		r.Rain1h = rain
		lines := application.FormatBoltStatus(r)
		wet, dry := contains(lines, application.BoltWet), contains(lines, application.BoltDry)
		if wet == dry {
			t.Fatalf("rain=%v: exactly one of wet/dry expected, got %q", rain, lines)
		}
		if wet != (rain > 0) {
			t.Fatalf("rain=%v: wrong branch, got %q", rain, lines)
		}
	}
}

func TestFormatBoltStatus_SnowLine(t *testing.T) {
	r := moscow()
	if n := len(application.FormatBoltStatus(r)); n != 4 {
		t.Fatalf("no snow should give 4 lines, got %d", n)
	}

	r.Snow1h = 1.2
	lines := application.FormatBoltStatus(r)
	if len(lines) != 5 {
		t.Fatalf("snow should give 5 lines, got %d", len(lines))
	}
	if lines[4] != application.BoltSnow {
		t.Fatalf("snow line must be last, got %q", lines)
	}
}

func TestFormatBoltStatus_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.WeatherReading)
		index  int
		want   string
	}{
		{"clouds 29 is clear", func(r *model.WeatherReading) { r.Clouds = 29 }, 1, application.BoltShadow},
		{"clouds 30 is cloudy", func(r *model.WeatherReading) { r.Clouds = 30 }, 1, application.BoltNoShadow},
		{"visibility 999 is fog", func(r *model.WeatherReading) { r.Visibility = 999 }, 2, application.BoltFog},
		{"visibility 1000 is clear", func(r *model.WeatherReading) { r.Visibility = 1000 }, 2, application.BoltVisible},
		{"wind 5 is calm", func(r *model.WeatherReading) { r.WindSpeed = 5 }, 3, application.BoltCalm},
		{"wind 5.1 is windy", func(r *model.WeatherReading) { r.WindSpeed = 5.1 }, 3, application.BoltSwaying},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := moscow()
			tt.mutate(&r)
			lines := application.FormatBoltStatus(r)
			if lines[tt.index] != tt.want {
				t.Fatalf("line %d: got %q, want %q", tt.index, lines[tt.index], tt.want)
			}
		})
	}
}
