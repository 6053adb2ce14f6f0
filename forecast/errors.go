package forecast

import (
	"errors"
	"fmt"

	"weather-skill/datasource"
)

// Classification is the user-facing category of a failed forecast query
type Classification int

const (
	// NoLocationOrKeyInvalid means the API answered without usable samples.
	// OpenWeatherMap answers this way for unknown places and for bad keys.
	NoLocationOrKeyInvalid Classification = iota + 1
	// NoNetwork means the API could not be reached or its answer not decoded.
	NoNetwork
	// Generic covers everything else.
	Generic
)

func (c Classification) String() string {
	switch c {
	case NoLocationOrKeyInvalid:
		return "no_location_or_key_invalid"
	case NoNetwork:
		return "no_network"
	default:
		return "generic"
	}
}

var (
	ErrNoSamples       = errors.New("forecast contains no samples")
	ErrMalformedSample = errors.New("malformed forecast sample")
)

// Error is a classified forecast failure
type Error struct {
	Class    Classification
	Location string // location that was queried, if known
	Err      error
}

func (e *Error) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s (location %q): %v", e.Class, e.Location, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps any error to a Classification
func Classify(err error) Classification {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Class
	}
	var ne *datasource.NetworkError
	if errors.As(err, &ne) {
		return NoNetwork
	}
	return Generic
}

// Wrap classifies err and records the queried location. A nil err stays nil.
func Wrap(err error, location string) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return &Error{Class: fe.Class, Location: location, Err: fe.Err}
	}
	return &Error{Class: Classify(err), Location: location, Err: err}
}

func invalid(err error) error {
	return &Error{Class: NoLocationOrKeyInvalid, Err: err}
}
