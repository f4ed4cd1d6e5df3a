//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPanel drives the car's discrete I/O through the Linux GPIO
// character device.
type RealPanel struct {
	chip        *gpiocdev.Chip
	switchLine  *gpiocdev.Line
	batteryLED  *gpiocdev.Line
	fuelCellLED *gpiocdev.Line
	sensorPower *gpiocdev.Line
	driveRail   *gpiocdev.Line
}

// NewRealPanel opens gpiochip0 and claims the panel's lines. The switch is
// requested with a pull-down so an unwired switch reads off; indicators
// start high (no fault), rails start low (powered down).
func NewRealPanel(pins Pins) (*RealPanel, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	p := &RealPanel{chip: chip}
	cleanup := func() {
		p.Close()
	}

	p.switchLine, err = chip.RequestLine(pins.Switch, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("request switch pin %d: %w", pins.Switch, err)
	}
	p.batteryLED, err = chip.RequestLine(pins.BatteryLED, gpiocdev.AsOutput(1))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("request battery LED pin %d: %w", pins.BatteryLED, err)
	}
	p.fuelCellLED, err = chip.RequestLine(pins.FuelCellLED, gpiocdev.AsOutput(1))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("request fuel-cell LED pin %d: %w", pins.FuelCellLED, err)
	}
	p.sensorPower, err = chip.RequestLine(pins.SensorPower, gpiocdev.AsOutput(0))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("request sensor power pin %d: %w", pins.SensorPower, err)
	}
	p.driveRail, err = chip.RequestLine(pins.DriveRail, gpiocdev.AsOutput(0))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("request drive rail pin %d: %w", pins.DriveRail, err)
	}

	return p, nil
}

// ReadSwitch returns the start-switch state. The switch pulls the line
// high when set to go.
func (p *RealPanel) ReadSwitch() (bool, error) {
	v, err := p.switchLine.Value()
	if err != nil {
		return false, fmt.Errorf("read switch: %w", err)
	}
	return v != 0, nil
}

// SetBatteryOK drives the battery indicator: high when ok, low on fault.
func (p *RealPanel) SetBatteryOK(ok bool) error {
	return setLine(p.batteryLED, ok, "battery LED")
}

// SetFuelCellOK drives the fuel-cell indicator: high when ok, low on fault.
func (p *RealPanel) SetFuelCellOK(ok bool) error {
	return setLine(p.fuelCellLED, ok, "fuel-cell LED")
}

// SetSensorPower enables the optical-sensor power rail.
func (p *RealPanel) SetSensorPower(on bool) error {
	return setLine(p.sensorPower, on, "sensor power")
}

// SetDriveRail enables the drive-power converter rail.
func (p *RealPanel) SetDriveRail(on bool) error {
	return setLine(p.driveRail, on, "drive rail")
}

func setLine(line *gpiocdev.Line, high bool, name string) error {
	v := 0
	if high {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// Close drops the rails, reconfigures lines to input with pull-down
// (matching Pi boot defaults) and releases them.
func (p *RealPanel) Close() error {
	var errs []error

	for _, line := range []*gpiocdev.Line{p.switchLine, p.batteryLED, p.fuelCellLED, p.sensorPower, p.driveRail} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
