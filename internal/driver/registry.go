package driver

import (
	"context"
	"sync"

	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/measurement"
)

// Detection lists the device-type bytes a driver answers to.
type Detection struct {
	DeviceTypes []byte
}

// Driver decodes a payload whose first byte selected it.
type Driver interface {
	Name() string
	Process(context.Context, []byte) ([]measurement.Measured, error)
}

var (
	regMu    sync.RWMutex
	registry []registeredDriver
)

type registeredDriver struct {
	detect Detection
	driver Driver
}

// Register stores a driver/detection pair in memory.
func Register(det Detection, drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, registeredDriver{detect: det, driver: drv})
}

// Lookup returns the first driver registered for deviceType.
func Lookup(deviceType byte) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rd := range registry {
		for _, t := range rd.detect.DeviceTypes {
			if t == deviceType {
				return rd.driver, nil
			}
		}
	}
	return nil, &frame.IncorrectMessageTypeError{Type: deviceType}
}

// Names lists the registered drivers in registration order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for _, rd := range registry {
		names = append(names, rd.driver.Name())
	}
	return names
}
