package fineoffset

import (
	"fmt"
	"time"

	"github.com/compenguy/weatherradio/internal/measurement"
)

// Readings offers typed lookups on top of a decoded measurement sequence.
type Readings struct {
	data []Measured
}

// Readings returns a Readings wrapper for the result's measurements.
func (r Result) Readings() Readings {
	return Readings{data: r.Measurements}
}

// ReadingsOf wraps a measurement sequence returned by Decode.
func ReadingsOf(ms []Measured) Readings {
	return Readings{data: ms}
}

// All exposes the underlying sequence.
func (rs Readings) All() []Measured {
	return rs.data
}

// Find returns the first record whose measurement has the given name.
func (rs Readings) Find(name string) (Measured, bool) {
	for _, m := range rs.data {
		if m.Measurement != nil && m.Measurement.Name() == name {
			return m, true
		}
	}
	return Measured{}, false
}

// Float returns the named measurement as float64.
func (rs Readings) Float(name string) (float64, error) {
	m, ok := rs.Find(name)
	if !ok {
		return 0, fmt.Errorf("measurement %q missing", name)
	}
	if _, isClock := m.Measurement.(Clock); isClock {
		return 0, fmt.Errorf("measurement %q is not numeric", name)
	}
	return measurement.Float(m.Measurement), nil
}

// Bool returns the named measurement as bool.
func (rs Readings) Bool(name string) (bool, error) {
	m, ok := rs.Find(name)
	if !ok {
		return false, fmt.Errorf("measurement %q missing", name)
	}
	b, ok := m.Measurement.(BatteryOK)
	if !ok {
		return false, fmt.Errorf("measurement %q has unsupported type %T", name, m.Measurement)
	}
	return bool(b), nil
}

// Time returns the named measurement as a time.
func (rs Readings) Time(name string) (time.Time, error) {
	m, ok := rs.Find(name)
	if !ok {
		return time.Time{}, fmt.Errorf("measurement %q missing", name)
	}
	c, ok := m.Measurement.(Clock)
	if !ok {
		return time.Time{}, fmt.Errorf("measurement %q has unsupported type %T", name, m.Measurement)
	}
	return time.Time(c), nil
}

// String returns the named measurement rendered with its unit.
func (rs Readings) String(name string) (string, error) {
	m, ok := rs.Find(name)
	if !ok {
		return "", fmt.Errorf("measurement %q missing", name)
	}
	return m.Measurement.String(), nil
}

// Temperature returns the temperature in Celsius, if present.
func (rs Readings) Temperature() (float64, bool) {
	v, err := rs.Float(TemperatureC(0).Name())
	return v, err == nil
}

// Humidity returns the relative humidity in percent, if present.
func (rs Readings) Humidity() (float64, bool) {
	v, err := rs.Float(RelativeHumidity(0).Name())
	return v, err == nil
}

// Rainfall returns the rainfall in millimetres, if present.
func (rs Readings) Rainfall() (float64, bool) {
	v, err := rs.Float(RainfallMM(0).Name())
	return v, err == nil
}

// BatteryOK returns the battery health flag, if present.
func (rs Readings) BatteryOK() (bool, bool) {
	v, err := rs.Bool(BatteryOK(false).Name())
	return v, err == nil
}

// Clock returns the broadcast date/time, if present.
func (rs Readings) Clock() (time.Time, bool) {
	v, err := rs.Time(Clock{}.Name())
	return v, err == nil
}
