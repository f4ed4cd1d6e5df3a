package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	State         string     `json:"state"`
	Light         int        `json:"light"`
	Baseline      int        `json:"baseline"`
	Threshold     int        `json:"threshold"`
	Health        HealthJSON `json:"health"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// HealthJSON is the JSON representation of the startup rail checks.
type HealthJSON struct {
	BatteryOK     bool    `json:"battery_ok"`
	FuelCellOK    bool    `json:"fuel_cell_ok"`
	BatteryVolts  float64 `json:"battery_volts"`
	FuelCellVolts float64 `json:"fuel_cell_volts"`
}

// MQTTStatus reports telemetry connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Starts        int `json:"run_starts"`
	Aborts        int `json:"run_aborts"`
	EndpointStops int `json:"endpoint_stops"`
}

// ConfigJSON is the JSON representation of controller config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	CalSamples  int    `json:"cal_samples"`
	CalDelayMs  int64  `json:"cal_delay_ms"`
	StirSpeed   int    `json:"stir_speed"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		State:     string(snap.State),
		Light:     snap.Light,
		Baseline:  snap.Baseline,
		Threshold: snap.Threshold,
		Health: HealthJSON{
			BatteryOK:     snap.Health.BatteryOK,
			FuelCellOK:    snap.Health.FuelCellOK,
			BatteryVolts:  snap.Health.BatteryVolts,
			FuelCellVolts: snap.Health.FuelCellVolts,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Starts:        snap.Counts.Starts,
			Aborts:        snap.Counts.Aborts,
			EndpointStops: snap.Counts.EndpointStops,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			CalSamples:  snap.Config.CalSamples,
			CalDelayMs:  snap.Config.CalDelayMs,
			StirSpeed:   snap.Config.StirSpeed,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for a telemetry system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
