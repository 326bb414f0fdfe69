package fineoffset

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var preamble = []byte{0xAA, 0x2D, 0xD4}

var messages = map[string]string{
	"wh31":  "30F8820A36402A",
	"whrcc": "525A0021081516131285AA",
	"wh40":  "4000123490012C1255",
	"ws68":  "6800ABCD2710522000001E5A3200E518",
}

func TestDecodeHex(t *testing.T) {
	raw := " |AA2D_D430 F882| "
	data, err := decodeHex(raw)
	require.NoError(t, err)
	require.Len(t, data, 6)

	data, err = decodeHex("0xaa2dd4")
	require.NoError(t, err)
	require.Equal(t, preamble, data)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := decodeHex("ABC")
	require.Error(t, err)
}

func TestAnalyzeHexWH31(t *testing.T) {
	result, err := AnalyzeHex(context.Background(), "AAAA2DD4 30F8820A36402A")
	require.NoError(t, err)
	require.Equal(t, "wh31", result.Driver)
	require.Equal(t, 11, result.ByteCount)
	require.Equal(t, "AAAA2DD430F8820A36402A", result.RawHex)

	readings := result.Readings()
	temp, ok := readings.Temperature()
	require.True(t, ok)
	require.InDelta(t, 12.2, temp, 1e-9)
	hum, ok := readings.Humidity()
	require.True(t, ok)
	require.Equal(t, 54.0, hum)
	battery, ok := readings.BatteryOK()
	require.True(t, ok)
	require.True(t, battery)
	_, ok = readings.Rainfall()
	require.False(t, ok)
	require.Contains(t, result.String(), `"driver": "wh31"`)
}

func TestDecodePaddingIndependent(t *testing.T) {
	fixed := func() time.Time { return goldenTime }
	opts := AnalyzeOptions{Now: fixed}
	paddingBytes := []byte{0x00, 0xAA, 0x2D, 0x55, 0xAA, 0xFF, 0xD4, 0xAA}
	for name, msgHex := range messages {
		msg := mustHex(t, msgHex)
		want, err := DecodeWithOptions(context.Background(), append(append([]byte{}, preamble...), msg...), opts)
		require.NoError(t, err, name)
		require.NotEmpty(t, want, name)
		for n := 0; n <= len(paddingBytes); n++ {
			buf := append(append(append([]byte{}, paddingBytes[:n]...), preamble...), msg...)
			got, err := DecodeWithOptions(context.Background(), buf, opts)
			require.NoError(t, err, "%s padding %d", name, n)
			require.Equal(t, want, got, "%s padding %d", name, n)
		}
	}
}

func TestDecodeBitFlips(t *testing.T) {
	for name, msgHex := range messages {
		msg := mustHex(t, msgHex)
		for i := 1; i < len(msg); i++ {
			for bit := 0; bit < 8; bit++ {
				corrupt := append([]byte{}, msg...)
				corrupt[i] ^= 1 << bit
				out, err := Decode(context.Background(), append(append([]byte{}, preamble...), corrupt...))
				require.Nil(t, out)
				require.True(t, errors.Is(err, ErrInvalidCRC) || errors.Is(err, ErrInvalidChecksum),
					"%s byte %d bit %d: %v", name, i, bit, err)
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	for name, msgHex := range messages {
		msg := mustHex(t, msgHex)
		for n := 1; n < len(msg); n++ {
			_, err := Decode(context.Background(), append(append([]byte{}, preamble...), msg[:n]...))
			require.ErrorIs(t, err, ErrTruncatedMessage, "%s length %d", name, n)
		}
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode(context.Background(), append(append([]byte{}, preamble...), 0x99, 0x01, 0x02))
	var typeErr *IncorrectMessageTypeError
	require.True(t, errors.As(err, &typeErr))
	require.Equal(t, byte(0x99), typeErr.Type)
	require.ErrorIs(t, err, ErrIncorrectMessageType)

	result, err := AnalyzeHex(context.Background(), "AA2DD499")
	require.Error(t, err)
	require.Empty(t, result.Driver)
}

func TestDecodeNoPreamble(t *testing.T) {
	for _, buf := range [][]byte{nil, {0x01, 0x02}, {0xAA, 0x2D, 0xD4}} {
		out, err := Decode(context.Background(), buf)
		require.NoError(t, err)
		require.Empty(t, out)
	}
	result, err := AnalyzeHex(context.Background(), "0102")
	require.NoError(t, err)
	require.Empty(t, result.Driver)
	require.Contains(t, result.String(), `"driver": "none"`)
}

func TestDecodeIsPure(t *testing.T) {
	buf := append(append([]byte{}, preamble...), mustHex(t, messages["ws68"])...)
	first, err := Decode(context.Background(), buf)
	require.NoError(t, err)
	second, err := Decode(context.Background(), buf)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		require.Equal(t, first[i].Measurement, second[i].Measurement)
		require.Equal(t, *first[i].DeviceID, *second[i].DeviceID)
	}
}

func TestDecodeRelaxed(t *testing.T) {
	buf := append(append([]byte{}, preamble...), mustHex(t, "4000123490012C0000")...)
	_, err := Decode(context.Background(), buf)
	require.ErrorIs(t, err, ErrInvalidCRC)

	out, err := DecodeWithOptions(context.Background(), buf, AnalyzeOptions{Relaxed: true})
	require.NoError(t, err)
	rain, ok := ReadingsOf(out).Rainfall()
	require.True(t, ok)
	require.InDelta(t, 30.0, rain, 1e-9)
}

func TestDecodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		for _, msgHex := range messages {
			buf := append(append([]byte{}, preamble...), mustHex(t, msgHex)...)
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := Decode(context.Background(), buf)
				if err != nil || len(out) == 0 {
					t.Errorf("concurrent decode failed: %v", err)
				}
			}()
		}
	}
	wg.Wait()
}

func TestReadingsClock(t *testing.T) {
	result, err := AnalyzeHex(context.Background(), "AA2DD4525A0021081516131285AA")
	require.NoError(t, err)
	clock, ok := result.Readings().Clock()
	require.True(t, ok)
	require.Equal(t, time.Date(2021, time.August, 15, 16, 13, 12, 0, time.UTC), clock)
	_, err = result.Readings().Float("Clock")
	require.Error(t, err)
	s, err := result.Readings().String("Clock")
	require.NoError(t, err)
	require.Equal(t, "Clock: 2021-08-15 16:13:12", s)
}

func TestDrivers(t *testing.T) {
	require.ElementsMatch(t, []string{"wh31", "whrcc", "wh40", "ws68"}, Drivers())
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
