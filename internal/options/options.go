package options

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compenguy/weatherradio/internal/frame"
)

type (
	integrityKey struct{}
	clockKey     struct{}
)

// WithIntegrity stores the validation mode inside the context.
func WithIntegrity(ctx context.Context, mode frame.Mode) context.Context {
	return context.WithValue(ctx, integrityKey{}, mode)
}

// Integrity retrieves the validation mode from context. Strict is returned
// when none was set.
func Integrity(ctx context.Context) frame.Mode {
	if v := ctx.Value(integrityKey{}); v != nil {
		if mode, ok := v.(frame.Mode); ok {
			return mode
		}
	}
	return frame.Strict
}

// WithClock overrides the capture clock used to stamp measurements.
func WithClock(ctx context.Context, now func() time.Time) context.Context {
	if now == nil {
		return ctx
	}
	return context.WithValue(ctx, clockKey{}, now)
}

// Now returns the capture time according to the clock stored in ctx.
func Now(ctx context.Context) time.Time {
	if v := ctx.Value(clockKey{}); v != nil {
		if now, ok := v.(func() time.Time); ok {
			return now()
		}
	}
	return time.Now().UTC()
}

// ParseIntegrity maps a configuration string onto a validation mode.
func ParseIntegrity(input string) (frame.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "strict":
		return frame.Strict, nil
	case "relaxed":
		return frame.Relaxed, nil
	default:
		return frame.Strict, fmt.Errorf("integrity mode must be strict or relaxed, got %q", input)
	}
}
