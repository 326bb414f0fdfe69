package whrcc

import (
	"context"
	"fmt"

	"github.com/compenguy/weatherradio/internal/driver"
	"github.com/compenguy/weatherradio/internal/driver/fineoffset"
	"github.com/compenguy/weatherradio/internal/measurement"
)

const (
	deviceTypeRCC = 0x52
	// 9 bytes data, 1 byte crc, 1 byte checksum
	messageLength = 11
)

func init() {
	driver.Register(driver.Detection{DeviceTypes: []byte{deviceTypeRCC}}, Driver{})
}

// Driver decodes the radio-controlled clock beacon.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "whrcc" }

// Process validates the payload and emits the broadcast date/time.
func (d Driver) Process(ctx context.Context, payload []byte) ([]measurement.Measured, error) {
	body, err := fineoffset.Message(ctx, payload, deviceTypeRCC, messageLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	clock, err := fineoffset.DecodeClock(body[3:9])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}
	e := fineoffset.Emitter(ctx, uint16(body[1]), nil)
	return e.Emit(measurement.Clock(clock)), nil
}

