package gpio

import "errors"

// FakePanel is a test double with a scripted switch and recorded outputs.
type FakePanel struct {
	// Switches contains scripted switch values. Each ReadSwitch consumes
	// the next one; when exhausted, the last value repeats.
	Switches []bool

	// index tracks current position in Switches
	index int

	// ReadError, if set, will be returned by ReadSwitch.
	ReadError error

	// Last written output values.
	BatteryOK   bool
	FuelCellOK  bool
	SensorPower bool
	DriveRail   bool

	// RailWrites records every SetDriveRail value in order.
	RailWrites []bool

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePanel creates a FakePanel with the given switch script.
// Indicators start high, matching the real panel's initial line state.
func NewFakePanel(switches []bool) *FakePanel {
	return &FakePanel{
		Switches:   switches,
		BatteryOK:  true,
		FuelCellOK: true,
	}
}

// ReadSwitch returns the next scripted switch value.
func (f *FakePanel) ReadSwitch() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Switches) == 0 {
		return false, errors.New("no switch samples configured")
	}
	v := f.Switches[f.index]
	if f.index < len(f.Switches)-1 {
		f.index++
	}
	return v, nil
}

// SetBatteryOK records the battery indicator value.
func (f *FakePanel) SetBatteryOK(ok bool) error {
	f.BatteryOK = ok
	return nil
}

// SetFuelCellOK records the fuel-cell indicator value.
func (f *FakePanel) SetFuelCellOK(ok bool) error {
	f.FuelCellOK = ok
	return nil
}

// SetSensorPower records the sensor power rail value.
func (f *FakePanel) SetSensorPower(on bool) error {
	f.SensorPower = on
	return nil
}

// SetDriveRail records the drive rail value.
func (f *FakePanel) SetDriveRail(on bool) error {
	f.DriveRail = on
	f.RailWrites = append(f.RailWrites, on)
	return nil
}

// Close marks the panel as closed.
func (f *FakePanel) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the switch script and clears recorded outputs.
func (f *FakePanel) Reset() {
	f.index = 0
	f.ReadError = nil
	f.BatteryOK = true
	f.FuelCellOK = true
	f.SensorPower = false
	f.DriveRail = false
	f.RailWrites = nil
	f.Closed = false
}
