package rosetta

import (
	"sync"

	"github.com/bartekchlebek/Rosetta/source"
	"github.com/bartekchlebek/Rosetta/source/gojson"
)

var (
	driverMu     sync.RWMutex
	globalDriver source.Driver = gojson.Driver()
)

// SetDriver replaces the global driver used to parse and serialize
// documents; nil values are ignored.
func SetDriver(d source.Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	globalDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the go-json driver.
func UseDefaultDriver() { SetDriver(gojson.Driver()) }

// DefaultDriver returns the driver currently installed with SetDriver.
func DefaultDriver() source.Driver { return currentDriver() }

func currentDriver() source.Driver {
	driverMu.RLock()
	defer driverMu.RUnlock()
	return globalDriver
}
