// Package status provides a thread-safe status tracker for the run
// controller. It is read by the HTTP status page and serialized into
// telemetry system events.
package status

import (
	"sync"
	"time"

	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/logic"
)

// Health holds the advisory startup rail checks. The flags drive the
// indicator LEDs and this page; they never gate the run.
type Health struct {
	BatteryOK     bool
	FuelCellOK    bool
	BatteryVolts  float64
	FuelCellVolts float64
}

// Config contains controller configuration for display.
type Config struct {
	PollMs      int64
	CalSamples  int
	CalDelayMs  int64
	StirSpeed   int
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of controller state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         logic.State
	Light         int
	Baseline      int
	Threshold     int
	Health        Health
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the controller started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable controller state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateIdle,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetHealth records the startup rail checks.
func (t *Tracker) SetHealth(h Health) {
	t.mu.Lock()
	t.snap.Health = h
	t.mu.Unlock()
}

// SetBaseline records the calibration result.
func (t *Tracker) SetBaseline(baseline, threshold int) {
	t.mu.Lock()
	t.snap.Baseline = baseline
	t.snap.Threshold = threshold
	t.mu.Unlock()
}

// Update sets the vehicle state, the last light sample, and the event
// counts. Called from the control loop on every tick.
func (t *Tracker) Update(state logic.State, light int, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Light = light
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the telemetry connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the controller state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
