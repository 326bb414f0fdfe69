package rtl433

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Options describes how the rtl_433 binary is invoked.
type Options struct {
	Binary    string
	Frequency string
	Protocols []int
}

// DefaultOptions listens on 915 MHz for the Fine Offset WH31/WH40/WS68
// family (rtl_433 protocol 113).
func DefaultOptions() Options {
	return Options{
		Binary:    "rtl_433",
		Frequency: "915M",
		Protocols: []int{113},
	}
}

// Args returns the command line arguments for rtl_433.
func (o Options) Args() []string {
	args := []string{"-M", "utc", "-F", "json"}
	if o.Frequency != "" {
		args = append(args, "-f", o.Frequency)
	}
	for _, p := range o.Protocols {
		args = append(args, "-R", strconv.Itoa(p))
	}
	return args
}

// Run starts rtl_433 and feeds its output through s until the process exits,
// ctx is cancelled or fn fails.
func (s Scanner) Run(ctx context.Context, opts Options, fn func(Record) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmd := exec.CommandContext(ctx, opts.Binary, opts.Args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("rtl_433 stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", opts.Binary, err)
	}
	if err := s.Scan(ctx, stdout, fn); err != nil {
		cancel()
		_ = cmd.Wait()
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s exited: %w", opts.Binary, err)
	}
	return nil
}
