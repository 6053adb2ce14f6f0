package speech

import (
	"errors"
	"fmt"
	"strings"

	"weather-skill/forecast"
	"weather-skill/models"
)

// Composer renders day summaries and forecast failures as German sentences.
// It is safe for concurrent use as long as its Chooser is.
type Composer struct {
	defaultLocation string
	chooser         Chooser
}

// NewComposer creates a composer. A nil chooser selects SystemChooser.
func NewComposer(defaultLocation string, chooser Chooser) *Composer {
	if chooser == nil {
		chooser = SystemChooser()
	}
	return &Composer{
		defaultLocation: defaultLocation,
		chooser:         chooser,
	}
}

// DefaultLocation is the place answers refer to when none is named
func (c *Composer) DefaultLocation() string {
	return c.defaultLocation
}

// Compose returns the spoken answer for a query. When err is non-nil the
// summary is ignored and an error phrasing is returned instead.
func (c *Composer) Compose(summary models.DaySummary, err error, mode models.Mode) string {
	if err != nil {
		return c.ErrorResponse(err)
	}

	in := c.inLocation(summary.Location)

	switch mode {
	case models.ModeCondition:
		response := fmt.Sprintf(conditionTemplate, in, summary.DominantCondition)
		return AddWarning(response, summary)
	case models.ModeTemperature:
		return fmt.Sprintf(temperatureTemplate,
			c.temperaturePlace(summary.Location),
			summary.Temperature,
			summary.TemperatureMax,
			summary.TemperatureMin,
		)
	default:
		response := fmt.Sprintf(fullTemplate,
			in,
			summary.DominantCondition,
			summary.Temperature,
			summary.TemperatureMax,
			summary.TemperatureMin,
		)
		return AddWarning(response, summary)
	}
}

// ErrorResponse returns a randomly phrased answer for a failed query
func (c *Composer) ErrorResponse(err error) string {
	switch forecast.Classify(err) {
	case forecast.NoNetwork:
		response := c.pick(noNetworkPhrases)
		if c.isDefaultLocation(queriedLocation(err)) {
			response = lookOutsidePrefix + response
		}
		return response
	case forecast.NoLocationOrKeyInvalid:
		return c.pick(noLocationOrKeyPhrases)
	default:
		return c.pick(genericErrorPhrases)
	}
}

// AddWarning appends a rain or snow hint unless the dominant condition
// already mentions it.
func AddWarning(response string, summary models.DaySummary) string {
	if summary.HasRain && !containsAny(summary.DominantCondition, rainWords) {
		response += rainWarning
	}
	if summary.HasSnow && !containsAny(summary.DominantCondition, snowWords) {
		response += snowWarning
	}
	return response
}

func (c *Composer) pick(phrases []string) string {
	i := c.chooser.Choose(len(phrases))
	if i < 0 || i >= len(phrases) {
		i = 0
	}
	return phrases[i]
}

func (c *Composer) isDefaultLocation(location string) bool {
	return location != "" && location == c.defaultLocation
}

// inLocation is the " in <place>" suffix, only for explicitly requested
// places other than the default.
func (c *Composer) inLocation(location string) string {
	if location == "" || location == c.defaultLocation {
		return ""
	}
	return " in " + location
}

func (c *Composer) temperaturePlace(location string) string {
	if in := c.inLocation(location); in != "" {
		return "In" + strings.TrimPrefix(in, " in")
	}
	return "Hier"
}

func queriedLocation(err error) string {
	var fe *forecast.Error
	if errors.As(err, &fe) {
		return fe.Location
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
