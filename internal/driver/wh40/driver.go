package wh40

import (
	"context"
	"fmt"

	"github.com/compenguy/weatherradio/internal/driver"
	"github.com/compenguy/weatherradio/internal/driver/fineoffset"
	"github.com/compenguy/weatherradio/internal/measurement"
)

const (
	deviceTypeWH40 = 0x40
	// 7 bytes data, 1 byte crc, 1 byte checksum
	messageLength = 9
)

func init() {
	driver.Register(driver.Detection{DeviceTypes: []byte{deviceTypeWH40}}, Driver{})
}

// Driver decodes the WH40 rain gauge.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "wh40" }

// Process validates the payload and emits battery state and rainfall.
func (d Driver) Process(ctx context.Context, payload []byte) ([]measurement.Measured, error) {
	body, err := fineoffset.Message(ctx, payload, deviceTypeWH40, messageLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	e := fineoffset.Emitter(ctx, fineoffset.Uint16(body, 2), measurement.Ptr(fineoffset.Channel(body[4])))
	return e.Emit(
		measurement.BatteryOK(fineoffset.BatteryOK(body[4])),
		measurement.RainfallMM(float64(fineoffset.Uint16(body, 5))/10),
	), nil
}
