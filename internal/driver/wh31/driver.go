package wh31

import (
	"context"
	"fmt"

	"github.com/compenguy/weatherradio/internal/driver"
	"github.com/compenguy/weatherradio/internal/driver/fineoffset"
	"github.com/compenguy/weatherradio/internal/measurement"
)

const (
	deviceTypeWH31E = 0x30
	deviceTypeWH31B = 0x37
	// 5 bytes data, 1 byte crc, 1 byte checksum
	messageLength = 7
)

func init() {
	driver.Register(driver.Detection{
		DeviceTypes: []byte{deviceTypeWH31E, deviceTypeWH31B},
	}, Driver{})
}

// Driver decodes WH31 temperature/humidity probes.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "wh31" }

// Reading is the decoded content of one WH31 message.
type Reading struct {
	DeviceType  byte
	DeviceID    uint8
	BatteryOK   bool
	Channel     uint8
	Temperature float64
	Humidity    uint8
}

// Parse decodes a verified message body.
func Parse(body []byte) Reading {
	rawTemp := int(body[2]&0x0F)<<8 | int(body[3])
	return Reading{
		DeviceType:  body[0],
		DeviceID:    body[1],
		BatteryOK:   fineoffset.BatteryOK(body[2]),
		Channel:     fineoffset.Channel(body[2]),
		Temperature: float64(rawTemp-400) / 10,
		Humidity:    body[4],
	}
}

// Process validates the payload and emits battery, temperature and humidity.
func (d Driver) Process(ctx context.Context, payload []byte) ([]measurement.Measured, error) {
	deviceType := byte(deviceTypeWH31E)
	if len(payload) > 0 && payload[0] == deviceTypeWH31B {
		deviceType = deviceTypeWH31B
	}
	body, err := fineoffset.Message(ctx, payload, deviceType, messageLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	r := Parse(body)
	e := fineoffset.Emitter(ctx, uint16(r.DeviceID), measurement.Ptr(r.Channel))
	return e.Emit(
		measurement.BatteryOK(r.BatteryOK),
		measurement.TemperatureC(r.Temperature),
		measurement.RelativeHumidity(r.Humidity),
	), nil
}
