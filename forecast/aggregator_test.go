package forecast

import (
	"errors"
	"testing"
	"time"

	"weather-skill/models"
)

var day0 = time.Date(2024, time.March, 5, 6, 0, 0, 0, time.UTC)

func sample(at time.Time, temp, tempMin, tempMax float64, code, description string) models.ForecastSample {
	dt := at.Unix()
	return models.ForecastSample{
		Dt: &dt,
		Main: &models.SampleMain{
			Temp:    &temp,
			TempMin: &tempMin,
			TempMax: &tempMax,
		},
		Weather: []models.SampleWeather{{Main: &code, Description: &description}},
	}
}

func requireClass(t *testing.T, err error, want Classification) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := Classify(err); got != want {
		t.Fatalf("expected classification %s, got %s (err: %v)", want, got, err)
	}
}

func TestSummarize_TwoSamplesSameDay(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, 5.2, 3.9, 6.1, "Rain", "Rain"),
		sample(day0.Add(3*time.Hour), 4.0, 2.0, 5.0, "Clear", "Clear"),
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if got.TemperatureMin != 2 {
		t.Errorf("expected min 2, got %d", got.TemperatureMin)
	}
	if got.TemperatureMax != 6 {
		t.Errorf("expected max 6, got %d", got.TemperatureMax)
	}
	if got.Temperature != 5 {
		t.Errorf("expected instant 5, got %d", got.Temperature)
	}
	if !got.HasRain {
		t.Error("expected rain")
	}
	if got.HasSnow {
		t.Error("expected no snow")
	}
	if got.DominantCondition != "rain" {
		t.Errorf("expected tie to resolve to first description %q, got %q", "rain", got.DominantCondition)
	}
	if got.Location != "" {
		t.Errorf("aggregator must not set a location, got %q", got.Location)
	}
}

func TestSummarize_TieBreakIsStable(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, 1, 1, 1, "Clouds", "Bedeckt"),
		sample(day0.Add(3*time.Hour), 1, 1, 1, "Clear", "Klarer Himmel"),
		sample(day0.Add(6*time.Hour), 1, 1, 1, "Clear", "klarer Himmel"),
		sample(day0.Add(9*time.Hour), 1, 1, 1, "Clouds", "bedeckt"),
	}

	first, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if first.DominantCondition != "bedeckt" {
		t.Fatalf("expected %q, got %q", "bedeckt", first.DominantCondition)
	}
	for i := 0; i < 50; i++ {
		again, _ := agg.Summarize(samples)
		if again.DominantCondition != first.DominantCondition {
			t.Fatalf("run %d: dominant condition changed from %q to %q", i, first.DominantCondition, again.DominantCondition)
		}
	}
}

func TestSummarize_DominantConditionMajority(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, 3, 3, 3, "Clear", "Klarer Himmel"),
		sample(day0.Add(3*time.Hour), 3, 3, 3, "Rain", "Leichter Regen"),
		sample(day0.Add(6*time.Hour), 3, 3, 3, "Rain", "leichter Regen"),
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got.DominantCondition != "leichter regen" {
		t.Errorf("expected %q, got %q", "leichter regen", got.DominantCondition)
	}
}

func TestSummarize_TruncatesTowardZero(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, -0.7, -3.9, -0.2, "Snow", "Schnee"),
		sample(day0.Add(3*time.Hour), -1.5, -2.5, -1.1, "Snow", "Schnee"),
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got.Temperature != 0 {
		t.Errorf("expected instant 0, got %d", got.Temperature)
	}
	if got.TemperatureMin != -3 {
		t.Errorf("expected min -3, got %d", got.TemperatureMin)
	}
	if got.TemperatureMax != 0 {
		t.Errorf("expected max 0, got %d", got.TemperatureMax)
	}
	if !got.HasSnow || got.HasRain {
		t.Errorf("expected snow only, got rain=%v snow=%v", got.HasRain, got.HasSnow)
	}
}

func TestSummarize_InstantNotClamped(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, 10.9, 2.0, 6.0, "Clear", "klar"),
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got.Temperature != 10 || got.TemperatureMax != 6 {
		t.Errorf("expected instant 10 above max 6, got instant %d max %d", got.Temperature, got.TemperatureMax)
	}
}

func TestSummarize_IgnoresOtherDays(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	tomorrow := day0.Add(24 * time.Hour)
	samples := []models.ForecastSample{
		sample(day0, 4, 3, 5, "Clear", "klar"),
		sample(day0.Add(15*time.Hour), 2, 1, 3, "Clear", "klar"),
		sample(tomorrow, -20, -25, 30, "Snow", "Schnee"),
		// Malformed samples on other days are never read
		{Dt: func() *int64 { v := tomorrow.Add(3 * time.Hour).Unix(); return &v }()},
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got.TemperatureMin != 1 || got.TemperatureMax != 5 {
		t.Errorf("expected min 1 max 5, got min %d max %d", got.TemperatureMin, got.TemperatureMax)
	}
	if got.HasSnow {
		t.Error("snow of the next day must not be reported")
	}
}

func TestSummarize_UsesAggregatorTimeZone(t *testing.T) {
	cet := time.FixedZone("CET", 60*60)
	// 23:00 UTC is already the next day in CET
	late := time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{
		sample(late, 1, 1, 1, "Clear", "klar"),
		sample(late.Add(3*time.Hour), 7, 7, 7, "Rain", "Regen"),
	}

	utc, err := NewAggregatorIn(time.UTC).Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize (UTC) returned error: %v", err)
	}
	if utc.TemperatureMax != 1 || utc.HasRain {
		t.Errorf("UTC: expected only the first sample, got max %d rain %v", utc.TemperatureMax, utc.HasRain)
	}

	local, err := NewAggregatorIn(cet).Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize (CET) returned error: %v", err)
	}
	if local.TemperatureMax != 7 || !local.HasRain {
		t.Errorf("CET: expected both samples, got max %d rain %v", local.TemperatureMax, local.HasRain)
	}
}

func TestSummarize_MinNeverAboveMax(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	temps := []float64{-12.3, 0.4, 7.7, -0.9, 3.3, 15.1, 2.2, -5.5}

	for n := 1; n <= len(temps); n++ {
		var samples []models.ForecastSample
		for i := 0; i < n; i++ {
			v := temps[i]
			samples = append(samples, sample(day0.Add(time.Duration(i)*time.Hour), v, v-1.5, v+2.5, "Clouds", "wolkig"))
		}
		got, err := agg.Summarize(samples)
		if err != nil {
			t.Fatalf("n=%d: Summarize returned error: %v", n, err)
		}
		if got.TemperatureMin > got.TemperatureMax {
			t.Errorf("n=%d: min %d above max %d", n, got.TemperatureMin, got.TemperatureMax)
		}
	}
}

func TestSummarize_Invalid(t *testing.T) {
	valid := sample(day0, 1, 1, 1, "Clear", "klar")
	noDt := valid
	noDt.Dt = nil
	noMain := valid
	noMain.Main = nil
	noTempMax := sample(day0, 1, 1, 1, "Clear", "klar")
	noTempMax.Main.TempMax = nil
	noWeather := valid
	noWeather.Weather = nil

	tests := []struct {
		name    string
		samples []models.ForecastSample
		target  error
	}{
		{name: "empty list", samples: nil, target: ErrNoSamples},
		{name: "first sample without dt", samples: []models.ForecastSample{noDt}, target: ErrMalformedSample},
		{name: "first sample without main", samples: []models.ForecastSample{noMain}, target: ErrMalformedSample},
		{name: "first sample without temp_max", samples: []models.ForecastSample{noTempMax}, target: ErrMalformedSample},
		{name: "first sample without weather", samples: []models.ForecastSample{noWeather}, target: ErrMalformedSample},
		{name: "later sample without dt", samples: []models.ForecastSample{valid, noDt}, target: ErrMalformedSample},
		{
			name: "later same-day sample without description",
			samples: []models.ForecastSample{
				valid,
				func() models.ForecastSample {
					s := sample(day0.Add(3*time.Hour), 1, 1, 1, "Clear", "klar")
					s.Weather[0].Description = nil
					return s
				}(),
			},
			target: ErrMalformedSample,
		},
	}

	agg := NewAggregatorIn(time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.Summarize(tt.samples)
			requireClass(t, err, NoLocationOrKeyInvalid)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected error wrapping %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSummarize_CountsCaseFolded(t *testing.T) {
	agg := NewAggregatorIn(time.UTC)
	samples := []models.ForecastSample{
		sample(day0, 1, 1, 1, "Rain", "Regen"),
		sample(day0.Add(3*time.Hour), 1, 1, 1, "Rain", "regen"),
		sample(day0.Add(6*time.Hour), 1, 1, 1, "Snow", "Schnee"),
		sample(day0.Add(9*time.Hour), 1, 1, 1, "Snow", "Schnee"),
	}

	got, err := agg.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got.DominantCondition != "regen" {
		t.Errorf("expected spellings differing only in case to count together, got %q", got.DominantCondition)
	}
}
