package wh31

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/compenguy/weatherradio/internal/driver"
	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/measurement"
	"github.com/compenguy/weatherradio/internal/options"
)

func TestDriverProcess(t *testing.T) {
	fixed := time.Date(2021, 8, 15, 16, 13, 12, 0, time.UTC)
	ctx := options.WithClock(context.Background(), func() time.Time { return fixed })
	cases := []struct {
		name     string
		payload  string
		id       uint16
		channel  uint8
		battery  bool
		tempC    float64
		humidity uint8
	}{
		{name: "wh31e", payload: "30F8820A36402A", id: 0xF8, channel: 1, battery: true, tempC: 12.2, humidity: 54},
		{name: "wh31b", payload: "3711B29C4107DE", id: 0x11, channel: 4, battery: true, tempC: 26.8, humidity: 65},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Driver{}.Process(ctx, mustHex(t, tc.payload))
			require.NoError(t, err)
			require.Len(t, out, 3)
			require.Equal(t, measurement.BatteryOK(tc.battery), out[0].Measurement)
			require.InDelta(t, tc.tempC, float64(out[1].Measurement.(measurement.TemperatureC)), 1e-9)
			require.Equal(t, measurement.RelativeHumidity(tc.humidity), out[2].Measurement)
			for _, m := range out {
				require.Equal(t, fixed, m.Timestamp)
				require.Equal(t, tc.id, *m.DeviceID)
				require.Equal(t, tc.channel, *m.Channel)
			}
		})
	}
}

func TestParseNegativeTemperature(t *testing.T) {
	// raw 0x064 = 100 -> -30.0 C, channel 8, battery low
	r := Parse([]byte{0x30, 0x01, 0x70, 0x64, 0x20})
	require.False(t, r.BatteryOK)
	require.Equal(t, uint8(8), r.Channel)
	require.InDelta(t, -30.0, r.Temperature, 1e-9)
}

func TestDriverErrors(t *testing.T) {
	_, err := Driver{}.Process(context.Background(), mustHex(t, "30F8820A36"))
	require.ErrorIs(t, err, frame.ErrTruncatedMessage)

	_, err = Driver{}.Process(context.Background(), mustHex(t, "30F8820A37402A"))
	require.ErrorIs(t, err, frame.ErrInvalidCRC)

	_, err = Driver{}.Process(context.Background(), mustHex(t, "40F8820A36402A"))
	require.ErrorIs(t, err, frame.ErrIncorrectMessageType)
}

func TestRegistered(t *testing.T) {
	for _, typ := range []byte{deviceTypeWH31E, deviceTypeWH31B} {
		drv, err := driver.Lookup(typ)
		require.NoError(t, err)
		require.Equal(t, "wh31", drv.Name())
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
