// Package rtl433 reads the JSON records printed by the rtl_433 radio
// capture utility.
package rtl433

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/compenguy/weatherradio/internal/measurement"
)

// TimeLayout is the format of the "time" key when rtl_433 runs with -M utc.
const TimeLayout = "2006-01-02 15:04:05"

var (
	ErrNotObject        = errors.New("record root not dictionary")
	ErrMissingTimestamp = errors.New("record missing timestamp")
	ErrMissingSensorID  = errors.New("record missing sensor id")
)

// Record is one rtl_433 JSON line mapped onto typed measurements.
type Record struct {
	Timestamp    time.Time
	SensorID     string
	Model        string
	DeviceID     *uint16
	Channel      *uint8
	Measurements []measurement.Measurement
	JSON         map[string]any
}

// Measured expands the record into one Measured per measurement.
func (r Record) Measured() []measurement.Measured {
	e := measurement.Emitter{Timestamp: r.Timestamp, DeviceID: r.DeviceID, Channel: r.Channel}
	return e.Emit(r.Measurements...)
}

// Parse decodes one JSON line such as
//
//	{"time" : "2021-08-15 16:13:12", "model" : "AmbientWeather-WH31E", "id" : 248, "channel" : 5, "battery_ok" : 1, "temperature_F" : 74.480, "humidity" : 54}
//
// interpreting its timestamp in loc.
func Parse(line []byte, loc *time.Location) (Record, error) {
	var root any
	if err := json.Unmarshal(line, &root); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	m, ok := root.(map[string]any)
	if !ok {
		return Record{}, ErrNotObject
	}
	if loc == nil {
		loc = time.UTC
	}
	raw, ok := m["time"].(string)
	if !ok {
		return Record{}, ErrMissingTimestamp
	}
	ts, err := time.ParseInLocation(TimeLayout, raw, loc)
	if err != nil {
		return Record{}, fmt.Errorf("parse record timestamp: %w", err)
	}
	rec := Record{Timestamp: ts, JSON: m}
	rec.Model, _ = m["model"].(string)
	if id, ok := unsigned(m["id"]); ok {
		rec.DeviceID = measurement.Ptr(uint16(id))
	}
	if ch, ok := unsigned(m["channel"]); ok {
		rec.Channel = measurement.Ptr(uint8(ch))
	}
	rec.SensorID, err = sensorID(rec.Model, rec.DeviceID, rec.Channel)
	if err != nil {
		return Record{}, err
	}
	rec.Measurements = measurements(m)
	return rec, nil
}

func sensorID(model string, id *uint16, ch *uint8) (string, error) {
	switch {
	case model != "" && ch != nil:
		return model + "/" + strconv.Itoa(int(*ch)), nil
	case id != nil && ch != nil:
		return fmt.Sprintf("%d/%d", *id, *ch), nil
	case model != "" && id != nil:
		return model + "/" + strconv.Itoa(int(*id)), nil
	case ch != nil:
		return strconv.Itoa(int(*ch)), nil
	case id != nil:
		return strconv.Itoa(int(*id)), nil
	default:
		return "", ErrMissingSensorID
	}
}

func measurements(m map[string]any) []measurement.Measurement {
	var out []measurement.Measurement
	if b, ok := unsigned(m["battery_ok"]); ok {
		out = append(out, measurement.BatteryOK(b != 0))
	}
	if f, ok := m["temperature_F"].(float64); ok {
		out = append(out, measurement.TemperatureC((f-32)*5/9))
	}
	if c, ok := m["temperature_C"].(float64); ok {
		out = append(out, measurement.TemperatureC(c))
	}
	if h, ok := unsigned(m["humidity"]); ok {
		out = append(out, measurement.RelativeHumidity(h))
	}
	if r, ok := m["rain_mm"].(float64); ok {
		out = append(out, measurement.RainfallMM(r))
	}
	if l, ok := unsigned(m["light_lux"]); ok {
		out = append(out, measurement.Illuminance(l))
	}
	if w, ok := m["wind_avg_m_s"].(float64); ok {
		out = append(out, measurement.WindSpeed(w))
	}
	if w, ok := m["wind_max_m_s"].(float64); ok {
		out = append(out, measurement.WindGust(w))
	}
	if d, ok := unsigned(m["wind_dir_deg"]); ok {
		out = append(out, measurement.WindDirection(d))
	}
	return out
}

// unsigned accepts JSON numbers that are non-negative integers.
func unsigned(v any) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint64(f), true
}
