package models

import (
	"time"
)

// ForecastResponse represents the body returned by the OpenWeatherMap forecast endpoint.
// Error bodies ({"cod":"404","message":"city not found"}) decode into the same
// struct with an empty list.
type ForecastResponse struct {
	Cod     any `json:"cod"`     // "200" on success, numeric or string on errors
	Message any `json:"message"` // error text on failures
	City    struct {
		Name string `json:"name"`
	} `json:"city"`
	List []ForecastSample `json:"list"`
}

// ForecastSample is a single 3-hour forecast point. Every field is optional so
// that a key missing from the payload can be told apart from a zero value.
type ForecastSample struct {
	Dt      *int64          `json:"dt"` // Timestamp
	Main    *SampleMain     `json:"main"`
	Weather []SampleWeather `json:"weather"`
}

// SampleMain holds the temperature readings of a sample
type SampleMain struct {
	Temp    *float64 `json:"temp"`
	TempMin *float64 `json:"temp_min"`
	TempMax *float64 `json:"temp_max"`
}

// SampleWeather holds the condition of a sample
type SampleWeather struct {
	Main        *string `json:"main"`        // condition code, e.g. "Rain"
	Description *string `json:"description"` // localized text, e.g. "leichter Regen"
}

// Time returns the sample timestamp. ok is false when dt is missing.
func (s ForecastSample) Time() (t time.Time, ok bool) {
	if s.Dt == nil {
		return time.Time{}, false
	}
	return time.Unix(*s.Dt, 0), true
}

// DaySummary is the aggregate of all samples that fall on one calendar day
type DaySummary struct {
	Location          string `json:"location,omitempty"` // empty means the configured default
	Temperature       int    `json:"temperature"`        // first sample of the day, truncated
	TemperatureMin    int    `json:"temperatureMin"`
	TemperatureMax    int    `json:"temperatureMax"`
	HasRain           bool   `json:"rain"`
	HasSnow           bool   `json:"snow"`
	DominantCondition string `json:"mainCondition"` // lower-cased description
}

// Mode selects what a spoken response covers
type Mode int

const (
	ModeFull Mode = iota
	ModeCondition
	ModeTemperature
)

// String returns the mode name used in API responses
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeCondition:
		return "condition"
	case ModeTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as returned by String
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "full":
		return ModeFull, true
	case "condition":
		return ModeCondition, true
	case "temperature":
		return ModeTemperature, true
	default:
		return 0, false
	}
}
