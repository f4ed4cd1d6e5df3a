// Package logic contains pure decision logic for the run controller.
// This package has NO external dependencies (no GPIO, ADC, serial, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// State represents the vehicle run state.
type State string

const (
	StateIdle    State = "IDLE"
	StateRunning State = "RUNNING"
	StateStopped State = "STOPPED" // terminal for the session
)

// EventType represents a run transition event.
type EventType string

const (
	EventRunStart     EventType = "RUN_START"
	EventRunAbort     EventType = "RUN_ABORT"
	EventEndpointStop EventType = "ENDPOINT_STOP"
)

// Event represents a run transition to be reported.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
	Light     int
	// Elapsed is the run duration; set only for ENDPOINT_STOP.
	Elapsed time.Duration
}

// Command is an actuation request produced by a machine step.
type Command int

const (
	CommandEngage Command = iota
	CommandDisengage
)

// Input represents a single cycle's sensor sample.
type Input struct {
	Switch bool // start switch, instantaneous (no debounce)
	Light  int  // optical sensor, 0..1023
	Time   time.Time
}

// Result carries the commands and events produced by one machine step.
// Commands are executed in order by the caller.
type Result struct {
	Commands []Command
	Events   []Event
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Starts        int
	Aborts        int
	EndpointStops int
}
