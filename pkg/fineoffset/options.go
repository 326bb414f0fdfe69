package fineoffset

import (
	"context"
	"time"

	"github.com/compenguy/weatherradio/internal/frame"
	internalopts "github.com/compenguy/weatherradio/internal/options"
)

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Relaxed skips the CRC and checksum verification.
	Relaxed bool
	// Now overrides the capture clock; defaults to time.Now in UTC.
	Now func() time.Time
}

func (opts AnalyzeOptions) toInternal(ctx context.Context) context.Context {
	mode := frame.Strict
	if opts.Relaxed {
		mode = frame.Relaxed
	}
	ctx = internalopts.WithIntegrity(ctx, mode)
	return internalopts.WithClock(ctx, opts.Now)
}
