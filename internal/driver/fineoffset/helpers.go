package fineoffset

import (
	"context"
	"fmt"
	"time"

	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/measurement"
	"github.com/compenguy/weatherradio/internal/options"
)

// YearEpoch is added to the two-digit year broadcast by clock beacons.
const YearEpoch = 2000

// Message validates payload against the device type and message length using
// the integrity mode carried by ctx.
func Message(ctx context.Context, payload []byte, deviceType byte, length int) ([]byte, error) {
	return frame.Validate(payload, deviceType, length, options.Integrity(ctx))
}

// Emitter prepares an emitter stamped with the capture time from ctx.
func Emitter(ctx context.Context, deviceID uint16, channel *uint8) measurement.Emitter {
	return measurement.Emitter{
		Timestamp: options.Now(ctx),
		DeviceID:  measurement.Ptr(deviceID),
		Channel:   channel,
	}
}

// Uint16 reads a big-endian value starting at b[i].
func Uint16(b []byte, i int) uint16 {
	return uint16(b[i])<<8 | uint16(b[i+1])
}

// BatteryOK reports the top bit of a status byte.
func BatteryOK(status byte) bool {
	return status&0x80 != 0
}

// Channel extracts the 0-based channel from bits 4-6 of a status byte and
// returns it 1-based.
func Channel(status byte) uint8 {
	return (status&0x70)>>4 + 1
}

// NibblePair combines the masked high nibble (tens) and low nibble (units)
// of b into a decimal value.
func NibblePair(b, tensMask byte) int {
	return int((b&tensMask)>>4)*10 + int(b&0x0F)
}

// ClockYear decodes the year byte of a clock message.
func ClockYear(b byte) int { return NibblePair(b, 0xF0) + YearEpoch }

// ClockMonth decodes the month byte of a clock message.
func ClockMonth(b byte) int { return NibblePair(b, 0x10) }

// ClockDay decodes the day byte of a clock message.
func ClockDay(b byte) int { return NibblePair(b, 0x30) }

// ClockHour decodes the hour byte of a clock message.
func ClockHour(b byte) int { return NibblePair(b, 0x30) }

// ClockMinute decodes the minute byte of a clock message.
func ClockMinute(b byte) int { return NibblePair(b, 0x70) }

// ClockSecond decodes the second byte of a clock message.
func ClockSecond(b byte) int { return NibblePair(b, 0x70) }

// DecodeClock assembles the date/time packed into b[0:6] as year, month,
// day, hour, minute and second bytes.
func DecodeClock(b []byte) (time.Time, error) {
	if len(b) < 6 {
		return time.Time{}, fmt.Errorf("clock requires 6 bytes, got %d", len(b))
	}
	year := ClockYear(b[0])
	month := ClockMonth(b[1])
	day := ClockDay(b[2])
	hour := ClockHour(b[3])
	minute := ClockMinute(b[4])
	second := ClockSecond(b[5])
	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalises out-of-range fields; a round trip catches them.
	if ts.Month() != time.Month(month) || ts.Day() != day || ts.Hour() != hour ||
		ts.Minute() != minute || ts.Second() != second {
		return time.Time{}, fmt.Errorf("%w: %02X%02X%02X%02X%02X%02X",
			frame.ErrInvalidTimestamp, b[0], b[1], b[2], b[3], b[4], b[5])
	}
	return ts, nil
}
