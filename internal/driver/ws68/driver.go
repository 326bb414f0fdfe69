package ws68

import (
	"context"
	"fmt"

	"github.com/compenguy/weatherradio/internal/driver"
	"github.com/compenguy/weatherradio/internal/driver/fineoffset"
	"github.com/compenguy/weatherradio/internal/measurement"
)

const (
	deviceTypeWS68 = 0x68
	// 14 bytes data, 1 byte crc, 1 byte checksum
	messageLength = 16

	// metres per second per raw wind count
	windScale = 0.1
	// raw battery levels above this are reported as healthy
	batteryOKThreshold = 0x30
)

func init() {
	driver.Register(driver.Detection{DeviceTypes: []byte{deviceTypeWS68}}, Driver{})
}

// Driver decodes the WS68 wind and light station.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "ws68" }

// Reading is the decoded content of one WS68 message.
type Reading struct {
	DeviceID      uint16
	Lux           uint16
	Battery       uint8
	WindSpeed     float64
	WindGust      float64
	WindDirection uint16
}

// Parse decodes a verified message body.
func Parse(body []byte) Reading {
	return Reading{
		DeviceID:      fineoffset.Uint16(body, 2),
		Lux:           fineoffset.Uint16(body, 4),
		Battery:       body[6],
		WindSpeed:     windSpeed(body[10]),
		WindGust:      windSpeed(body[12]),
		WindDirection: windDirection(body[7], body[11]),
	}
}

func windSpeed(raw byte) float64 {
	return float64(raw) * windScale
}

// Bit 5 of the flags byte is bit 8 of the bearing.
func windDirection(flags, low byte) uint16 {
	return uint16(flags&0x20)<<3 | uint16(low)
}

// BatteryOK derives a health flag from the raw battery level. The station
// has no dedicated flag bit and the threshold has not been checked against
// hardware.
func BatteryOK(level uint8) bool {
	return level > batteryOKThreshold
}

// Process validates the payload and emits battery, light and wind fields.
func (d Driver) Process(ctx context.Context, payload []byte) ([]measurement.Measured, error) {
	body, err := fineoffset.Message(ctx, payload, deviceTypeWS68, messageLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	r := Parse(body)
	e := fineoffset.Emitter(ctx, r.DeviceID, nil)
	return e.Emit(
		measurement.BatteryLevelRaw(r.Battery),
		measurement.BatteryOK(BatteryOK(r.Battery)),
		measurement.Illuminance(r.Lux),
		measurement.WindSpeed(r.WindSpeed),
		measurement.WindGust(r.WindGust),
		measurement.WindDirection(r.WindDirection),
	), nil
}
