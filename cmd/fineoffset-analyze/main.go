package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/compenguy/weatherradio/internal/config"
	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/metrics"
	"github.com/compenguy/weatherradio/internal/rtl433"
	"github.com/compenguy/weatherradio/pkg/fineoffset"
)

var (
	rootCmd = &cobra.Command{
		Use:               "fineoffset-analyze [hex]",
		Short:             "Decode Fine Offset weather sensor messages",
		Long:              "fineoffset-analyze decodes hex captures of Fine Offset (Ambient Weather, Froggit, EcoWitt) sensor messages.",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, os.Stdin)
			}
			return runAnalyze(ctx, args[0])
		},
	}

	rtl433Cmd = &cobra.Command{
		Use:   "rtl433",
		Short: "Print measurements from rtl_433 JSON records",
		Long:  "rtl433 spawns the configured rtl_433 binary, or reads its JSON output from stdin with --stdin, and prints the decoded measurements.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRTL433(cmd.Context())
		},
	}

	configPath  string
	relaxed     bool
	verbose     int
	quiet       bool
	metricsAddr string
	fromStdin   bool
	rtl433Bin   string

	cfg   *config.Config
	opts  fineoffset.AnalyzeOptions
	stats *metrics.Metrics
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML configuration file")
	flags.BoolVar(&relaxed, "relaxed", false, "skip CRC and checksum verification")
	flags.CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9433")

	rtl433Cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read rtl_433 JSON lines from stdin")
	rtl433Cmd.Flags().StringVar(&rtl433Bin, "rtl433-bin", "", "path to the rtl_433 binary")
	rootCmd.AddCommand(rtl433Cmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// setup merges the configuration file with flags; flags win only when set.
func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("relaxed") {
		cfg.Integrity = frame.Strict.String()
		if relaxed {
			cfg.Integrity = frame.Relaxed.String()
		}
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Address = metricsAddr
	}
	if rtl433Bin != "" {
		cfg.RTL433.Binary = rtl433Bin
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.Changed("quiet") || flags.Changed("verbose") {
		logrus.SetLevel(config.VerbosityLevel(quiet, verbose))
	} else {
		level, _ := cfg.Level()
		logrus.SetLevel(level)
	}

	mode, _ := cfg.Mode()
	opts = fineoffset.AnalyzeOptions{Relaxed: mode == frame.Relaxed}
	if opts.Relaxed {
		logrus.Warn("integrity checks disabled")
	}

	reg := prometheus.NewRegistry()
	stats = metrics.New(reg)
	if cfg.Metrics.Address != "" {
		go serveMetrics(cmd.Context(), cfg.Metrics.Address, reg)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logrus.WithField("addr", addr).Info("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("metrics server failed")
	}
}

func runInteractive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("fineoffset analyze mode. Paste a hex capture and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(ctx, line); err != nil {
			logrus.WithError(err).Error("failed to decode capture")
		}
	}
	return scanner.Err()
}

func runAnalyze(ctx context.Context, hex string) error {
	result, err := fineoffset.AnalyzeHexWithOptions(ctx, hex, opts)
	stats.ObserveDecode(result.Driver, result.Measurements, err)
	if err != nil {
		return err
	}
	if result.Driver == "" {
		logrus.WithField("bytes", result.ByteCount).Info("no preamble found")
	}
	for _, m := range result.Measurements {
		logrus.WithFields(logrus.Fields(m.Fields())).Debug("measurement")
	}
	fmt.Println(result.String())
	return nil
}

func runRTL433(ctx context.Context) error {
	loc, err := cfg.RTL433.TimeLocation()
	if err != nil {
		return err
	}
	scanner := rtl433.Scanner{Location: loc, Logger: logrus.StandardLogger()}
	handle := func(rec rtl433.Record) error {
		if cfg.Ignored(rec.SensorID) {
			logrus.WithField("sensor", rec.SensorID).Debug("ignoring sensor")
			return nil
		}
		measured := rec.Measured()
		stats.ObserveRecord(rec.SensorID, measured)
		for _, m := range measured {
			fmt.Printf("%s %s\n", rec.SensorID, m)
		}
		return nil
	}
	if fromStdin {
		return scanner.Scan(ctx, os.Stdin, handle)
	}
	rtlOpts := cfg.RTL433.Options()
	logrus.WithFields(logrus.Fields{
		"binary": rtlOpts.Binary,
		"args":   strings.Join(rtlOpts.Args(), " "),
	}).Info("starting rtl_433")
	err = scanner.Run(ctx, rtlOpts, handle)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
