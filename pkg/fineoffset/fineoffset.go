// Package fineoffset decodes messages broadcast by Fine Offset wireless
// weather sensors (also sold as Ambient Weather, Froggit and EcoWitt).
package fineoffset

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/compenguy/weatherradio/internal/driver"
	_ "github.com/compenguy/weatherradio/internal/driver/wh31"  // register driver
	_ "github.com/compenguy/weatherradio/internal/driver/wh40"  // register driver
	_ "github.com/compenguy/weatherradio/internal/driver/whrcc" // register driver
	_ "github.com/compenguy/weatherradio/internal/driver/ws68"  // register driver
	"github.com/compenguy/weatherradio/internal/frame"
)

// Result captures the outcome of AnalyzeHex.
type Result struct {
	// Driver is empty when the buffer held no preamble.
	Driver       string
	RawHex       string
	ByteCount    int
	Measurements []Measured
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	driverName := r.Driver
	if driverName == "" {
		driverName = "none"
	}
	summary := map[string]any{
		"driver":     driverName,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if len(r.Measurements) > 0 {
		fields := make([]map[string]any, 0, len(r.Measurements))
		for _, m := range r.Measurements {
			fields = append(fields, m.Fields())
		}
		summary["measurements"] = fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d raw:%s (marshal error: %v)", driverName, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Decode locates and decodes the message in buf with strict integrity
// checks. A buffer without a preamble yields no measurements and no error.
func Decode(ctx context.Context, buf []byte) ([]Measured, error) {
	return DecodeWithOptions(ctx, buf, AnalyzeOptions{})
}

// DecodeWithOptions decodes buf with custom options.
func DecodeWithOptions(ctx context.Context, buf []byte, opts AnalyzeOptions) ([]Measured, error) {
	_, measured, err := decode(opts.toInternal(ctx), buf)
	return measured, err
}

// AnalyzeHex decodes a hex-encoded capture.
func AnalyzeHex(ctx context.Context, raw string) (Result, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex-encoded capture with custom options.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		RawHex:    strings.ToUpper(hex.EncodeToString(data)),
		ByteCount: len(data),
	}
	name, measured, err := decode(opts.toInternal(ctx), data)
	result.Driver = name
	if err != nil {
		return result, err
	}
	result.Measurements = measured
	return result, nil
}

func decode(ctx context.Context, buf []byte) (string, []Measured, error) {
	payload, ok := frame.Locate(buf)
	if !ok {
		return "", nil, nil
	}
	drv, err := driver.Lookup(payload[0])
	if err != nil {
		return "", nil, err
	}
	measured, err := drv.Process(ctx, payload)
	if err != nil {
		return drv.Name(), nil, err
	}
	return drv.Name(), measured, nil
}

// Drivers lists the registered device drivers.
func Drivers() []string {
	return driver.Names()
}

func decodeHex(input string) ([]byte, error) {
	clean := strings.ToUpper(stripWhitespace(input))
	clean = strings.TrimPrefix(clean, "0X")
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex capture must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
