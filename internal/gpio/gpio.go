// Package gpio provides the car's discrete I/O with hardware abstraction:
// the start switch input, the two health indicator LEDs, and the
// sensor-power and drive-power rail enables. The real implementation uses
// the Linux GPIO character device; the fake allows testing without
// hardware.
package gpio

// Panel is the car's discrete I/O surface.
type Panel interface {
	// ReadSwitch returns the instantaneous start-switch state.
	// The line is not debounced; callers see every bounce.
	ReadSwitch() (bool, error)

	// SetBatteryOK drives the battery health indicator. The indicator is
	// active-low-off: held high when ok, driven low to signal a fault.
	SetBatteryOK(ok bool) error

	// SetFuelCellOK drives the fuel-cell health indicator, same convention.
	SetFuelCellOK(ok bool) error

	// SetSensorPower enables or disables the optical-sensor power rail.
	SetSensorPower(on bool) error

	// SetDriveRail enables or disables the drive-power converter rail.
	SetDriveRail(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinSwitch      = 17 // start switch, pulled down, high = go
	DefaultPinBatteryLED  = 22
	DefaultPinFuelCellLED = 23
	DefaultPinSensorPower = 24
	DefaultPinDriveRail   = 25
)

// Pins carries the pin assignment for a real panel.
type Pins struct {
	Switch      int
	BatteryLED  int
	FuelCellLED int
	SensorPower int
	DriveRail   int
}

// DefaultPins returns the default pin assignment.
func DefaultPins() Pins {
	return Pins{
		Switch:      DefaultPinSwitch,
		BatteryLED:  DefaultPinBatteryLED,
		FuelCellLED: DefaultPinFuelCellLED,
		SensorPower: DefaultPinSensorPower,
		DriveRail:   DefaultPinDriveRail,
	}
}
