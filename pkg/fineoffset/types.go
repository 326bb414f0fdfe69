package fineoffset

import (
	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/measurement"
)

type (
	Measured    = measurement.Measured
	Measurement = measurement.Measurement

	BatteryOK        = measurement.BatteryOK
	BatteryLevelRaw  = measurement.BatteryLevelRaw
	TemperatureC     = measurement.TemperatureC
	RelativeHumidity = measurement.RelativeHumidity
	Clock            = measurement.Clock
	RainfallMM       = measurement.RainfallMM
	Illuminance      = measurement.Illuminance
	WindSpeed        = measurement.WindSpeed
	WindGust         = measurement.WindGust
	WindDirection    = measurement.WindDirection

	// IncorrectMessageTypeError carries the unrecognised device-type byte.
	IncorrectMessageTypeError = frame.IncorrectMessageTypeError
)

// Decode errors. All are returned wrapped; match them with errors.Is.
var (
	ErrEmptyMessage         = frame.ErrEmptyMessage
	ErrTruncatedMessage     = frame.ErrTruncatedMessage
	ErrIncorrectMessageType = frame.ErrIncorrectMessageType
	ErrInvalidCRC           = frame.ErrInvalidCRC
	ErrInvalidChecksum      = frame.ErrInvalidChecksum
	ErrInvalidTimestamp     = frame.ErrInvalidTimestamp
)
