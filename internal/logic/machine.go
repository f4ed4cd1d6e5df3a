package logic

import "time"

// EndpointFraction is the fraction of the calibration baseline below which
// the reaction is considered complete.
const EndpointFraction = 0.8

// Machine is the run state machine. It owns the vehicle state exclusively;
// callers feed it one Input per control cycle and execute the resulting
// commands on the actuation interface.
type Machine struct {
	state     State
	baseline  int
	threshold int // int(EndpointFraction * baseline), fixed at construction
	runStart  time.Time
	counts    EventCounts
}

// NewMachine creates a machine in the Idle state with the given calibration
// baseline. The endpoint threshold is fixed here and never recalibrated.
func NewMachine(baseline int) *Machine {
	return &Machine{
		state:     StateIdle,
		baseline:  baseline,
		threshold: int(EndpointFraction * float64(baseline)),
	}
}

// Step evaluates one control cycle. Rules in precedence order:
//
//  1. Idle + switch on: start the run (engage, capture run timer).
//  2. Else, switch off while not stopped: return to Idle. This fires even
//     when already Idle, acting as a continuous ensure-disengaged
//     assertion; an abort event is reported only when a run was active.
//  3. Independently, running + light below threshold: latching stop.
//     Once Stopped, rules 1 and 2 are gated off and nothing re-engages.
//
// Rule 3 sees the state left by rules 1-2 in the same pass, so a cycle
// that starts with the light already past the endpoint engages and then
// immediately disengages.
func (m *Machine) Step(in Input) Result {
	var res Result

	switch {
	case m.state == StateIdle && in.Switch:
		m.state = StateRunning
		m.runStart = in.Time
		res.Commands = append(res.Commands, CommandEngage)
		res.Events = append(res.Events, Event{
			Timestamp: in.Time,
			Type:      EventRunStart,
			State:     m.state,
			Light:     in.Light,
		})
		m.counts.Starts++

	case !in.Switch && m.state != StateStopped:
		prev := m.state
		m.state = StateIdle
		m.runStart = time.Time{}
		res.Commands = append(res.Commands, CommandDisengage)
		if prev == StateRunning {
			res.Events = append(res.Events, Event{
				Timestamp: in.Time,
				Type:      EventRunAbort,
				State:     m.state,
				Light:     in.Light,
			})
			m.counts.Aborts++
		}
	}

	if m.state == StateRunning && in.Light < m.threshold {
		elapsed := in.Time.Sub(m.runStart)
		m.state = StateStopped
		m.runStart = time.Time{}
		res.Commands = append(res.Commands, CommandDisengage)
		res.Events = append(res.Events, Event{
			Timestamp: in.Time,
			Type:      EventEndpointStop,
			State:     m.state,
			Light:     in.Light,
			Elapsed:   elapsed,
		})
		m.counts.EndpointStops++
	}

	return res
}

// State returns the current vehicle state.
func (m *Machine) State() State {
	return m.state
}

// Baseline returns the calibration baseline the machine was built with.
func (m *Machine) Baseline() int {
	return m.baseline
}

// Threshold returns the fixed endpoint threshold in sensor units.
func (m *Machine) Threshold() int {
	return m.threshold
}

// Counts returns the event counts since construction.
func (m *Machine) Counts() EventCounts {
	return m.counts
}
