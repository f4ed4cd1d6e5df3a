package actuate

import (
	"fmt"

	"go.bug.st/serial"
)

// wirePort is the subset of serial.Port the Maestro needs. Tests substitute
// a recording implementation.
type wirePort interface {
	Write(p []byte) (int, error)
	Close() error
}

// Maestro drives the servos through a Pololu Maestro controller using the
// compact protocol. Not safe for concurrent use; the control loop is the
// only caller.
type Maestro struct {
	port  wirePort
	rail  RailFunc
	armed bool
}

// NewMaestro opens the controller's serial port. rail switches the
// drive-power converter; it is required.
func NewMaestro(portName string, rail RailFunc) (*Maestro, error) {
	if rail == nil {
		return nil, fmt.Errorf("maestro: rail function is required")
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: 9600})
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", portName, err)
	}
	return &Maestro{port: port, rail: rail}, nil
}

// newMaestroWithPort wires an already open port. Used by tests.
func newMaestroWithPort(port wirePort, rail RailFunc) *Maestro {
	return &Maestro{port: port, rail: rail}
}

// Engage powers the rail and commands the forward setpoints. A drive that
// is already armed is left untouched.
func (m *Maestro) Engage() error {
	if m.armed {
		return nil
	}
	if err := m.rail(true); err != nil {
		return fmt.Errorf("engage: %w", err)
	}
	if err := m.setTarget(ChannelLeft, targetLeftForward); err != nil {
		return fmt.Errorf("engage left: %w", err)
	}
	if err := m.setTarget(ChannelRight, targetRightForward); err != nil {
		return fmt.Errorf("engage right: %w", err)
	}
	m.armed = true
	return nil
}

// Disengage neutralizes, releases, and powers down. No-op when the drive
// is not armed.
func (m *Maestro) Disengage() error {
	if !m.armed {
		return nil
	}
	// Neutral first so releasing never leaves the wheels driving.
	if err := m.setTarget(ChannelLeft, targetNeutral); err != nil {
		return fmt.Errorf("disengage left: %w", err)
	}
	if err := m.setTarget(ChannelRight, targetNeutral); err != nil {
		return fmt.Errorf("disengage right: %w", err)
	}
	if err := m.setTarget(ChannelLeft, targetRelease); err != nil {
		return fmt.Errorf("release left: %w", err)
	}
	if err := m.setTarget(ChannelRight, targetRelease); err != nil {
		return fmt.Errorf("release right: %w", err)
	}
	if err := m.rail(false); err != nil {
		return fmt.Errorf("disengage rail: %w", err)
	}
	m.armed = false
	return nil
}

// StartStir starts the continuous-rotation stir servo. speed 0..100 maps
// onto pulse width above neutral.
func (m *Maestro) StartStir(speed int) error {
	if speed < 0 || speed > 100 {
		return fmt.Errorf("stir speed %d out of range 0..100", speed)
	}
	target := targetNeutral + speed*8 // 100 -> 1700 us
	if err := m.setTarget(ChannelStir, target); err != nil {
		return fmt.Errorf("start stir: %w", err)
	}
	return nil
}

// setTarget sends a compact-protocol Set Target command. The target is in
// quarter-microseconds, split into two 7-bit bytes.
func (m *Maestro) setTarget(channel, target int) error {
	cmd := []byte{0x84, byte(channel), byte(target & 0x7F), byte(target >> 7 & 0x7F)}
	if _, err := m.port.Write(cmd); err != nil {
		return err
	}
	return nil
}

// Close releases the serial port.
func (m *Maestro) Close() error {
	return m.port.Close()
}
