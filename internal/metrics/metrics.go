package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/measurement"
)

// Metrics contains the Prometheus collectors for decoding activity
type Metrics struct {
	MessagesDecoded     *prometheus.CounterVec
	DecodeErrors        *prometheus.CounterVec
	MeasurementsEmitted *prometheus.CounterVec
	NoPreamble          prometheus.Counter
	RTL433Records       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesDecoded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherradio_messages_decoded_total",
			Help: "Total number of sensor messages decoded, by driver",
		}, []string{"driver"}),
		DecodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherradio_decode_errors_total",
			Help: "Total number of buffers that failed to decode, by reason",
		}, []string{"reason"}),
		MeasurementsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherradio_measurements_emitted_total",
			Help: "Total number of measurements emitted, by measurement name",
		}, []string{"name"}),
		NoPreamble: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherradio_buffers_without_preamble_total",
			Help: "Total number of buffers that held no message preamble",
		}),
		RTL433Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherradio_rtl433_records_total",
			Help: "Total number of rtl_433 records received, by sensor",
		}, []string{"sensor"}),
	}
}

// ObserveDecode records the outcome of decoding one buffer. An empty driver
// name with no error means the buffer held no preamble.
func (m *Metrics) ObserveDecode(driver string, measured []measurement.Measured, err error) {
	if err != nil {
		m.DecodeErrors.WithLabelValues(Reason(err)).Inc()
		return
	}
	if driver == "" {
		m.NoPreamble.Inc()
		return
	}
	m.MessagesDecoded.WithLabelValues(driver).Inc()
	m.observeMeasurements(measured)
}

// ObserveRecord records one rtl_433 record.
func (m *Metrics) ObserveRecord(sensorID string, measured []measurement.Measured) {
	m.RTL433Records.WithLabelValues(sensorID).Inc()
	m.observeMeasurements(measured)
}

func (m *Metrics) observeMeasurements(measured []measurement.Measured) {
	for _, ms := range measured {
		m.MeasurementsEmitted.WithLabelValues(ms.Measurement.Name()).Inc()
	}
}

// Reason classifies a decode error into a bounded label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, frame.ErrEmptyMessage):
		return "empty"
	case errors.Is(err, frame.ErrTruncatedMessage):
		return "truncated"
	case errors.Is(err, frame.ErrIncorrectMessageType):
		return "type"
	case errors.Is(err, frame.ErrInvalidCRC):
		return "crc"
	case errors.Is(err, frame.ErrInvalidChecksum):
		return "checksum"
	case errors.Is(err, frame.ErrInvalidTimestamp):
		return "timestamp"
	default:
		return "other"
	}
}
