package forecast

import (
	"fmt"
	"time"

	"weather-skill/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Condition codes reported in weather[0].main
const (
	ConditionRain = "Rain"
	ConditionSnow = "Snow"
)

// Aggregator turns a provider's 3-hour samples into a summary of the first
// day they cover. It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	loc *time.Location
}

// NewAggregator returns an aggregator that determines calendar days in the
// local time zone of the process.
func NewAggregator() *Aggregator {
	return NewAggregatorIn(time.Local)
}

// NewAggregatorIn returns an aggregator that determines calendar days in loc
func NewAggregatorIn(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{loc: loc}
}

// reading is a sample with every required field present
type reading struct {
	temp        float64
	tempMin     float64
	tempMax     float64
	code        string
	description string
}

func readSample(s models.ForecastSample) (reading, error) {
	if s.Main == nil || s.Main.Temp == nil || s.Main.TempMin == nil || s.Main.TempMax == nil {
		return reading{}, fmt.Errorf("%w: missing temperature", ErrMalformedSample)
	}
	if len(s.Weather) == 0 || s.Weather[0].Main == nil || s.Weather[0].Description == nil {
		return reading{}, fmt.Errorf("%w: missing weather condition", ErrMalformedSample)
	}
	return reading{
		temp:        *s.Main.Temp,
		tempMin:     *s.Main.TempMin,
		tempMax:     *s.Main.TempMax,
		code:        *s.Weather[0].Main,
		description: *s.Weather[0].Description,
	}, nil
}

// Summarize aggregates the samples that fall on the same calendar day as the
// first sample. Every failure is returned as an *Error classified
// NoLocationOrKeyInvalid.
//
// The instant temperature is taken from the first sample of the day and is not
// clamped into [min, max]. Temperatures are truncated toward zero.
func (a *Aggregator) Summarize(samples []models.ForecastSample) (models.DaySummary, error) {
	if len(samples) == 0 {
		return models.DaySummary{}, invalid(ErrNoSamples)
	}

	first, ok := samples[0].Time()
	if !ok {
		return models.DaySummary{}, invalid(fmt.Errorf("%w: sample 0 has no timestamp", ErrMalformedSample))
	}
	if _, err := readSample(samples[0]); err != nil {
		return models.DaySummary{}, invalid(fmt.Errorf("sample 0: %w", err))
	}

	refYear, refMonth, refDay := first.In(a.loc).Date()

	today := make([]reading, 0, len(samples))
	for i, s := range samples {
		t, ok := s.Time()
		if !ok {
			return models.DaySummary{}, invalid(fmt.Errorf("%w: sample %d has no timestamp", ErrMalformedSample, i))
		}
		year, month, day := t.In(a.loc).Date()
		if year != refYear || month != refMonth || day != refDay {
			continue
		}
		r, err := readSample(s)
		if err != nil {
			return models.DaySummary{}, invalid(fmt.Errorf("sample %d: %w", i, err))
		}
		today = append(today, r)
	}

	minTemp, maxTemp := today[0].tempMin, today[0].tempMax
	descriptions := make([]string, 0, len(today))
	summary := models.DaySummary{
		Temperature: int(today[0].temp),
	}
	for _, r := range today {
		minTemp = min(minTemp, r.tempMin)
		maxTemp = max(maxTemp, r.tempMax)
		switch r.code {
		case ConditionRain:
			summary.HasRain = true
		case ConditionSnow:
			summary.HasSnow = true
		}
		descriptions = append(descriptions, r.description)
	}
	summary.TemperatureMin = int(minTemp)
	summary.TemperatureMax = int(maxTemp)
	summary.DominantCondition = dominantCondition(descriptions)

	return summary, nil
}

// dominantCondition returns the most frequent lower-cased description. On a
// tie the description that occurs first in the input wins.
func dominantCondition(descriptions []string) string {
	lower := cases.Lower(language.German)

	counts := make(map[string]int, len(descriptions))
	order := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		d = lower.String(d)
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}

	best := ""
	bestCount := 0
	for _, d := range order {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
