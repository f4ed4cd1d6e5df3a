//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealPanel is not available on non-Linux platforms.
type RealPanel struct{}

// NewRealPanel returns an error on non-Linux platforms.
func NewRealPanel(Pins) (*RealPanel, error) {
	return nil, errUnsupported
}

func (p *RealPanel) ReadSwitch() (bool, error)    { return false, errUnsupported }
func (p *RealPanel) SetBatteryOK(bool) error      { return errUnsupported }
func (p *RealPanel) SetFuelCellOK(bool) error     { return errUnsupported }
func (p *RealPanel) SetSensorPower(bool) error    { return errUnsupported }
func (p *RealPanel) SetDriveRail(bool) error      { return errUnsupported }
func (p *RealPanel) Close() error                 { return nil }
