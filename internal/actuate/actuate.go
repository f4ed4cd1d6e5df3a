// Package actuate provides the car's actuation interface: the two drive
// servos and the stirring servo behind a Pololu Maestro servo controller,
// plus the drive-power rail. The real implementation speaks the Maestro
// compact protocol over a serial port; the fake counts side effects for
// tests.
package actuate

// Drive is the opaque actuation capability used by the run controller.
// Engage and Disengage are idempotent: repeated calls in the same state
// have no additional side effects.
type Drive interface {
	// Engage powers the drive rail, arms the drive servos if they are not
	// already armed, and commands the fixed forward setpoints. Re-arming
	// an armed drive can glitch position, so an engaged drive is left
	// alone.
	Engage() error

	// Disengage commands neutral before releasing the servos, then
	// releases them and drops the drive rail. Neutral-before-release
	// prevents an uncontrolled coast.
	Disengage() error

	// StartStir starts the continuous stirring servo at the given speed
	// (0..100). Called once at initialization; there is no stop — the
	// stir runs for the whole session.
	StartStir(speed int) error

	// Close releases the controller link. It does not touch the servos.
	Close() error
}

// RailFunc switches the drive-power converter rail.
type RailFunc func(on bool) error

// Maestro channel assignments.
const (
	ChannelLeft  = 0
	ChannelRight = 1
	ChannelStir  = 2
)

// Servo targets in Maestro units (quarter-microseconds of pulse width).
// The two drive servos are mirrored, so forward is above neutral on the
// left and below on the right.
const (
	targetNeutral      = 6000 // 1500 us
	targetLeftForward  = 6800 // 1700 us
	targetRightForward = 5200 // 1300 us
	targetRelease      = 0    // Maestro: target 0 stops sending pulses
)
