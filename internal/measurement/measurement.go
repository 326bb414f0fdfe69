// Package measurement holds the typed values produced by the sensor drivers.
package measurement

import (
	"fmt"
	"strconv"
	"time"
)

// ClockLayout is the format used to render Clock values.
const ClockLayout = "2006-01-02 15:04:05"

// Measurement is one decoded sensor field. The set of implementations is
// closed; see the types below.
type Measurement interface {
	fmt.Stringer
	// Name identifies the kind of field, e.g. "Temperature".
	Name() string
	// Unit is the physical unit of Value, empty when dimensionless.
	Unit() string
	// Value renders the decoded value without its unit.
	Value() string

	measurement()
}

type (
	// BatteryOK reports whether the sensor flags its battery as healthy.
	BatteryOK bool
	// BatteryLevelRaw is an uncalibrated battery reading.
	BatteryLevelRaw uint8
	// TemperatureC is a temperature in degrees Celsius.
	TemperatureC float64
	// RelativeHumidity is a relative humidity in percent.
	RelativeHumidity uint8
	// Clock is the wall-clock time broadcast by a radio clock beacon.
	Clock time.Time
	// RainfallMM is an accumulated rainfall in millimetres.
	RainfallMM float64
	// Illuminance is a light reading in lux.
	Illuminance uint16
	// WindSpeed is an average wind speed in metres per second.
	WindSpeed float64
	// WindGust is a peak wind speed in metres per second.
	WindGust float64
	// WindDirection is a wind bearing in degrees.
	WindDirection uint16
)

func (BatteryOK) measurement()        {}
func (BatteryLevelRaw) measurement()  {}
func (TemperatureC) measurement()     {}
func (RelativeHumidity) measurement() {}
func (Clock) measurement()            {}
func (RainfallMM) measurement()       {}
func (Illuminance) measurement()      {}
func (WindSpeed) measurement()        {}
func (WindGust) measurement()         {}
func (WindDirection) measurement()    {}

func (BatteryOK) Name() string        { return "BatteryOk" }
func (BatteryLevelRaw) Name() string  { return "BatteryLevel" }
func (TemperatureC) Name() string     { return "Temperature" }
func (RelativeHumidity) Name() string { return "Humidity" }
func (Clock) Name() string            { return "Clock" }
func (RainfallMM) Name() string       { return "Rainfall" }
func (Illuminance) Name() string      { return "Lux" }
func (WindSpeed) Name() string        { return "WindSpeed" }
func (WindGust) Name() string         { return "WindGust" }
func (WindDirection) Name() string    { return "WindDirection" }

func (BatteryOK) Unit() string        { return "" }
func (BatteryLevelRaw) Unit() string  { return "" }
func (TemperatureC) Unit() string     { return "C" }
func (RelativeHumidity) Unit() string { return "%" }
func (Clock) Unit() string            { return "" }
func (RainfallMM) Unit() string       { return "mm" }
func (Illuminance) Unit() string      { return "lux" }
func (WindSpeed) Unit() string        { return "m/s" }
func (WindGust) Unit() string         { return "m/s" }
func (WindDirection) Unit() string    { return "deg" }

func (b BatteryOK) Value() string        { return strconv.FormatBool(bool(b)) }
func (b BatteryLevelRaw) Value() string  { return strconv.Itoa(int(b)) }
func (t TemperatureC) Value() string     { return strconv.FormatFloat(float64(t), 'f', 1, 64) }
func (h RelativeHumidity) Value() string { return strconv.Itoa(int(h)) }
func (c Clock) Value() string            { return time.Time(c).Format(ClockLayout) }
func (r RainfallMM) Value() string       { return strconv.FormatFloat(float64(r), 'f', 1, 64) }
func (l Illuminance) Value() string      { return strconv.Itoa(int(l)) }
func (w WindSpeed) Value() string        { return strconv.FormatFloat(float64(w), 'f', 1, 64) }
func (w WindGust) Value() string         { return strconv.FormatFloat(float64(w), 'f', 1, 64) }
func (w WindDirection) Value() string    { return strconv.Itoa(int(w)) }

func (b BatteryOK) String() string        { return format(b) }
func (b BatteryLevelRaw) String() string  { return format(b) }
func (t TemperatureC) String() string     { return format(t) }
func (h RelativeHumidity) String() string { return format(h) }
func (c Clock) String() string            { return format(c) }
func (r RainfallMM) String() string       { return format(r) }
func (l Illuminance) String() string      { return format(l) }
func (w WindSpeed) String() string        { return format(w) }
func (w WindGust) String() string         { return format(w) }
func (w WindDirection) String() string    { return format(w) }

func format(m Measurement) string {
	if unit := m.Unit(); unit != "" {
		return fmt.Sprintf("%s: %s %s", m.Name(), m.Value(), unit)
	}
	return fmt.Sprintf("%s: %s", m.Name(), m.Value())
}

// Float returns the numeric value of m. Booleans map to 0/1 and clocks to
// Unix seconds.
func Float(m Measurement) float64 {
	switch v := m.(type) {
	case BatteryOK:
		if v {
			return 1
		}
		return 0
	case BatteryLevelRaw:
		return float64(v)
	case TemperatureC:
		return float64(v)
	case RelativeHumidity:
		return float64(v)
	case Clock:
		return float64(time.Time(v).Unix())
	case RainfallMM:
		return float64(v)
	case Illuminance:
		return float64(v)
	case WindSpeed:
		return float64(v)
	case WindGust:
		return float64(v)
	case WindDirection:
		return float64(v)
	default:
		return 0
	}
}
