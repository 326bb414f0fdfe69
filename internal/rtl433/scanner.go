package rtl433

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Scanner turns a stream of rtl_433 JSON lines into records.
type Scanner struct {
	// Location for record timestamps; UTC when nil.
	Location *time.Location
	Logger   logrus.FieldLogger
}

// Scan calls fn for every line of r that parses as a record. Lines that do
// not parse are skipped. Scan stops at EOF, when ctx is done, or when fn
// returns an error.
func (s Scanner) Scan(ctx context.Context, r io.Reader, fn func(Record) error) error {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := Parse(line, s.Location)
		if err != nil {
			logger.WithError(err).WithField("line", string(line)).Debug("skipping rtl_433 line")
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return sc.Err()
}
