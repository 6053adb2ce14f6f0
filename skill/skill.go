// Package skill answers spoken weather questions. It resolves the place to
// look up, fetches the forecast, summarizes today's samples and renders the
// answer. Failures never escape: every call returns a sentence.
package skill

import (
	"context"
	"log/slog"
	"strings"

	"weather-skill/datasource"
	"weather-skill/forecast"
	"weather-skill/models"
	"weather-skill/speech"
)

// Query is the part of a parsed intent the skill needs
type Query interface {
	// ResolvedLocation returns the requested place, if the user named one
	ResolvedLocation() (string, bool)
}

// Location is a Query for a place given as plain text. The empty string means
// no place was named.
type Location string

// ResolvedLocation implements Query
func (l Location) ResolvedLocation() (string, bool) {
	name := strings.TrimSpace(string(l))
	return name, name != ""
}

// Skill ties a forecast source to the aggregator and the composer
type Skill struct {
	source          datasource.ForecastSource
	aggregator      *forecast.Aggregator
	composer        *speech.Composer
	defaultLocation string
}

// New creates a skill. Queries without a place go to the composer's default
// location.
func New(source datasource.ForecastSource, aggregator *forecast.Aggregator, composer *speech.Composer) *Skill {
	return &Skill{
		source:          source,
		aggregator:      aggregator,
		composer:        composer,
		defaultLocation: composer.DefaultLocation(),
	}
}

// Forecast answers with condition, temperatures and a precipitation warning
func (s *Skill) Forecast(ctx context.Context, q Query) string {
	return s.Answer(ctx, q, models.ModeFull)
}

// Condition answers with the condition and a precipitation warning
func (s *Skill) Condition(ctx context.Context, q Query) string {
	return s.Answer(ctx, q, models.ModeCondition)
}

// Temperature answers with the current, highest and lowest temperature
func (s *Skill) Temperature(ctx context.Context, q Query) string {
	return s.Answer(ctx, q, models.ModeTemperature)
}

// Answer renders the response for mode
func (s *Skill) Answer(ctx context.Context, q Query, mode models.Mode) string {
	summary, err := s.Summary(ctx, q)
	return s.composer.Compose(summary, err, mode)
}

// Summary fetches and aggregates today's forecast. Errors are *forecast.Error
// values carrying the queried location.
func (s *Skill) Summary(ctx context.Context, q Query) (models.DaySummary, error) {
	location, explicit := s.resolve(q)

	resp, err := s.source.FetchForecast(ctx, location)
	if err != nil {
		err = forecast.Wrap(err, location)
		slog.Warn("forecast fetch failed",
			"source", s.source.Name(),
			"location", location,
			"class", forecast.Classify(err),
			"err", err,
		)
		return models.DaySummary{}, err
	}

	summary, err := s.aggregator.Summarize(resp.List)
	if err != nil {
		err = forecast.Wrap(err, location)
		slog.Warn("forecast not usable",
			"source", s.source.Name(),
			"location", location,
			"cod", resp.Cod,
			"class", forecast.Classify(err),
			"err", err,
		)
		return models.DaySummary{}, err
	}

	if explicit {
		summary.Location = location
	}
	return summary, nil
}

func (s *Skill) resolve(q Query) (string, bool) {
	if q != nil {
		if location, ok := q.ResolvedLocation(); ok && location != "" {
			return location, true
		}
	}
	return s.defaultLocation, false
}
