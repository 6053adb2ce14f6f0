package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"weather-skill/models"
)

// ErrUnknownIntent is returned for intents the skill does not handle
var ErrUnknownIntent = errors.New("unknown intent")

// intentPrefix is shared by all weather forecast intents
const intentPrefix = "searchWeatherForecast"

// Slots that describe what is asked rather than where
var nonLocationSlots = map[string]bool{
	"forecast_condition_name":   true,
	"forecast_start_date_time":  true,
	"forecast_item":             true,
	"forecast_temperature_name": true,
}

// Message is an NLU intent as published by the voice assistant
type Message struct {
	Input  string `json:"input"`
	Intent struct {
		IntentName      string  `json:"intentName"`
		ConfidenceScore float64 `json:"confidenceScore"`
	} `json:"intent"`
	Slots []Slot `json:"slots"`
}

// Slot is one recognized entity of an intent
type Slot struct {
	SlotName string    `json:"slotName"`
	Entity   string    `json:"entity"`
	RawValue string    `json:"rawValue"`
	Value    SlotValue `json:"value"`
}

// SlotValue is the resolved value of a slot. Value is a string for custom
// entities and places, other kinds may carry numbers or objects.
type SlotValue struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Parse decodes an intent message
func Parse(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse intent: %w", err)
	}
	return &m, nil
}

// ResolvedLocation returns the value of the first slot that is not about the
// kind of forecast asked for.
func (m *Message) ResolvedLocation() (string, bool) {
	for _, slot := range m.Slots {
		if nonLocationSlots[slot.SlotName] {
			continue
		}
		if value, ok := slot.Value.Value.(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// Mode maps the intent name to the kind of answer to give
func (m *Message) Mode() (models.Mode, error) {
	name := m.Intent.IntentName
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	if !strings.HasPrefix(name, intentPrefix) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, m.Intent.IntentName)
	}

	switch strings.TrimPrefix(name, intentPrefix) {
	case "":
		return models.ModeFull, nil
	case "Condition", "Item":
		return models.ModeCondition, nil
	case "Temperature":
		return models.ModeTemperature, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, m.Intent.IntentName)
	}
}
