package rtl433

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	input := strings.Join([]string{
		wh31eLine,
		"",
		"rtl_433 version 21.12",
		`{"time":"2021-08-15 16:13:20","model":"Fineoffset-WH40","id":4660,"channel":2,"rain_mm":30.0}`,
	}, "\n")

	var ids []string
	err := Scanner{Logger: logger}.Scan(context.Background(), strings.NewReader(input), func(r Record) error {
		ids = append(ids, r.SensorID)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AmbientWeather-WH31E/5", "Fineoffset-WH40/2"}, ids)
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, "skipping rtl_433 line", hook.LastEntry().Message)
}

func TestScanStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	input := wh31eLine + "\n" + wh31eLine + "\n"
	err := Scanner{}.Scan(context.Background(), strings.NewReader(input), func(Record) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Scanner{}.Scan(ctx, strings.NewReader(wh31eLine+"\n"), func(Record) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsArgs(t *testing.T) {
	require.Equal(t,
		[]string{"-M", "utc", "-F", "json", "-f", "915M", "-R", "113"},
		DefaultOptions().Args())
	require.Equal(t,
		[]string{"-M", "utc", "-F", "json", "-R", "113", "-R", "78"},
		Options{Protocols: []int{113, 78}}.Args())
}

func TestRunMissingBinary(t *testing.T) {
	err := Scanner{}.Run(context.Background(), Options{Binary: "/nonexistent/rtl_433"}, func(Record) error { return nil })
	require.Error(t, err)
}

func TestRunEcho(t *testing.T) {
	if _, err := os.Stat("/bin/echo"); err != nil {
		t.Skip("/bin/echo not available")
	}
	logger, _ := test.NewNullLogger()
	calls := 0
	err := Scanner{Logger: logger}.Run(context.Background(), Options{Binary: "/bin/echo"}, func(Record) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Zero(t, calls)
}
