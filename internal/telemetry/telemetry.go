// Package telemetry provides advisory MQTT event publishing with
// abstraction for testing. Publishing is one-way and never affects
// control decisions; a car with no broker in reach runs identically.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/logic"
)

// TopicRun is the MQTT topic for run transition events.
const TopicRun = "chemecar/run/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "chemecar/run/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishRun sends a run transition event to the broker.
	// Returns error if publishing fails (must not crash the process).
	PublishRun(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // pre-formatted status snapshot; takes precedence
	Retained   bool
}

// Payload is the MQTT message payload for run events.
type Payload struct {
	Car CarPayload `json:"car"`
}

// CarPayload contains the run event details.
type CarPayload struct {
	Timestamp      string  `json:"timestamp"`
	Event          string  `json:"event"`
	State          string  `json:"state"`
	Light          int     `json:"light"`
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`
}

// FormatPayload creates the JSON payload for a run event.
func FormatPayload(event logic.Event) ([]byte, error) {
	return json.Marshal(Payload{
		Car: CarPayload{
			Timestamp:      event.Timestamp.UTC().Format(time.RFC3339),
			Event:          string(event.Type),
			State:          string(event.State),
			Light:          event.Light,
			ElapsedSeconds: event.Elapsed.Seconds(),
		},
	})
}

// SystemPayload is the MQTT message payload for simple system events that
// carry no status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	return json.Marshal(SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	})
}
