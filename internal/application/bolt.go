package application

import "meteobolt-bot/internal/domain/model"

const (
	BoltWet       = "BOLT WET — RAINING"
	BoltDry       = "BOLT DRY — NO RAIN"
	BoltShadow    = "BOLT CASTS SHADOW — CLEAR"
	BoltNoShadow  = "BOLT CASTS NO SHADOW — CLOUDY"
	BoltFog       = "BOLT NOT VISIBLE — FOG"
	BoltVisible   = "BOLT VISIBLE — NO FOG"
	BoltSwaying   = "BOLT SWAYING — WINDY"
	BoltCalm      = "BOLT NOT SWAYING — CALM"
	BoltSnow      = "BOLT IN WHITE — SNOW"
	cloudyPercent = 30
	fogMeters     = 1000
	windyMps      = 5.0
)

// FormatBoltStatus returns rain, clouds, visibility and wind lines in that
// order, plus a trailing snow line when it snows. There is no "no snow" line.
func FormatBoltStatus(r model.WeatherReading) []string {
	lines := make([]string, 0, 5)

	if r.Rain1h > 0 {
		lines = append(lines, BoltWet)
	} else {
		lines = append(lines, BoltDry)
	}

	if r.Clouds < cloudyPercent {
		lines = append(lines, BoltShadow)
	} else {
		lines = append(lines, BoltNoShadow)
	}

	if r.Visibility < fogMeters {
		lines = append(lines, BoltFog)
	} else {
		lines = append(lines, BoltVisible)
	}

	if r.WindSpeed > windyMps {
		lines = append(lines, BoltSwaying)
	} else {
		lines = append(lines, BoltCalm)
	}

	if r.Snow1h > 0 {
		lines = append(lines, BoltSnow)
	}
	return lines
}
