package intent

import (
	"errors"
	"testing"

	"weather-skill/models"
)

const hamburgIntent = `{
  "input": "wie wird das wetter heute in hamburg",
  "intent": {"intentName": "user:searchWeatherForecast", "confidenceScore": 0.93},
  "slots": [
    {"slotName": "forecast_start_date_time", "entity": "snips/datetime", "rawValue": "heute",
     "value": {"kind": "InstantTime", "value": "2024-03-05 00:00:00 +01:00"}},
    {"slotName": "forecast_locality", "entity": "locality", "rawValue": "hamburg",
     "value": {"kind": "Custom", "value": "Hamburg"}}
  ]
}`

func TestParse(t *testing.T) {
	msg, err := Parse([]byte(hamburgIntent))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if msg.Intent.IntentName != "user:searchWeatherForecast" {
		t.Errorf("unexpected intent name %q", msg.Intent.IntentName)
	}
	if len(msg.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(msg.Slots))
	}

	location, ok := msg.ResolvedLocation()
	if !ok || location != "Hamburg" {
		t.Errorf("expected Hamburg, got %q (ok=%v)", location, ok)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"intent":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestResolvedLocation(t *testing.T) {
	tests := []struct {
		name  string
		slots []Slot
		want  string
		ok    bool
	}{
		{name: "no slots"},
		{
			name: "only question slots",
			slots: []Slot{
				{SlotName: "forecast_condition_name", Value: SlotValue{Kind: "Custom", Value: "Regen"}},
				{SlotName: "forecast_item", Value: SlotValue{Kind: "Custom", Value: "Regenschirm"}},
				{SlotName: "forecast_temperature_name", Value: SlotValue{Kind: "Custom", Value: "warm"}},
			},
		},
		{
			name: "first location wins",
			slots: []Slot{
				{SlotName: "forecast_country", Value: SlotValue{Kind: "Custom", Value: "Österreich"}},
				{SlotName: "forecast_locality", Value: SlotValue{Kind: "Custom", Value: "Wien"}},
			},
			want: "Österreich",
			ok:   true,
		},
		{
			name: "non-string and blank values are skipped",
			slots: []Slot{
				{SlotName: "forecast_geographical_poi", Value: SlotValue{Kind: "Amount", Value: 3.0}},
				{SlotName: "forecast_region", Value: SlotValue{Kind: "Custom", Value: "  "}},
				{SlotName: "forecast_locality", Value: SlotValue{Kind: "Custom", Value: " Köln "}},
			},
			want: "Köln",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{Slots: tt.slots}
			got, ok := msg.ResolvedLocation()
			if got != tt.want || ok != tt.ok {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		intentName string
		want       models.Mode
		wantErr    bool
	}{
		{intentName: "searchWeatherForecast", want: models.ModeFull},
		{intentName: "user:searchWeatherForecast", want: models.ModeFull},
		{intentName: "searchWeatherForecastCondition", want: models.ModeCondition},
		{intentName: "searchWeatherForecastItem", want: models.ModeCondition},
		{intentName: "someone:searchWeatherForecastTemperature", want: models.ModeTemperature},
		{intentName: "searchWeatherForecastTomorrow", wantErr: true},
		{intentName: "setTimer", wantErr: true},
		{intentName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.intentName, func(t *testing.T) {
			msg := &Message{}
			msg.Intent.IntentName = tt.intentName

			got, err := msg.Mode()
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownIntent) {
					t.Fatalf("expected ErrUnknownIntent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Mode returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
