package measurement

import (
	"fmt"
	"time"
)

// Measured binds one measurement to the metadata of the message it came from.
type Measured struct {
	Timestamp   time.Time
	DeviceID    *uint16
	Channel     *uint8
	Measurement Measurement
}

// String renders the record as "[timestamp][dddd/cc] Name: value unit".
func (m Measured) String() string {
	var id uint16
	var ch uint8
	if m.DeviceID != nil {
		id = *m.DeviceID
	}
	if m.Channel != nil {
		ch = *m.Channel
	}
	return fmt.Sprintf("[%s][%04x/%02x] %s", m.Timestamp.Format(time.RFC3339), id, ch, m.Measurement)
}

// Fields flattens the record into a map suitable for JSON output or
// structured logging.
func (m Measured) Fields() map[string]any {
	fields := map[string]any{
		"timestamp": m.Timestamp.Format(time.RFC3339),
		"name":      m.Measurement.Name(),
		"value":     m.Measurement.Value(),
	}
	if unit := m.Measurement.Unit(); unit != "" {
		fields["unit"] = unit
	}
	if m.DeviceID != nil {
		fields["device_id"] = *m.DeviceID
	}
	if m.Channel != nil {
		fields["channel"] = *m.Channel
	}
	return fields
}

// Emitter stamps the fields of a single message with shared metadata.
type Emitter struct {
	Timestamp time.Time
	DeviceID  *uint16
	Channel   *uint8
}

// Emit wraps ms, in order, into Measured records.
func (e Emitter) Emit(ms ...Measurement) []Measured {
	out := make([]Measured, 0, len(ms))
	for _, m := range ms {
		out = append(out, Measured{
			Timestamp:   e.Timestamp,
			DeviceID:    copyPtr(e.DeviceID),
			Channel:     copyPtr(e.Channel),
			Measurement: m,
		})
	}
	return out
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}
