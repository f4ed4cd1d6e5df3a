package actuate

import (
	"errors"
	"testing"
)

// recordingPort captures every write for byte-level assertions.
type recordingPort struct {
	writes [][]byte
	err    error
	closed bool
}

func (p *recordingPort) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	p.writes = append(p.writes, cp)
	return len(b), nil
}

func (p *recordingPort) Close() error {
	p.closed = true
	return nil
}

// railRecorder records rail switching for assertions.
type railRecorder struct {
	values []bool
	err    error
}

func (r *railRecorder) set(on bool) error {
	if r.err != nil {
		return r.err
	}
	r.values = append(r.values, on)
	return nil
}

func setTargetBytes(channel, target int) []byte {
	return []byte{0x84, byte(channel), byte(target & 0x7F), byte(target >> 7 & 0x7F)}
}

func TestEngageCommands(t *testing.T) {
	port := &recordingPort{}
	rail := &railRecorder{}
	m := newMaestroWithPort(port, rail.set)

	if err := m.Engage(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rail.values) != 1 || !rail.values[0] {
		t.Errorf("rail: got %v, want [true]", rail.values)
	}
	want := [][]byte{
		setTargetBytes(ChannelLeft, targetLeftForward),
		setTargetBytes(ChannelRight, targetRightForward),
	}
	assertWrites(t, port.writes, want)
}

func TestEngageIdempotent(t *testing.T) {
	port := &recordingPort{}
	rail := &railRecorder{}
	m := newMaestroWithPort(port, rail.set)

	m.Engage()
	writesAfterFirst := len(port.writes)
	railAfterFirst := len(rail.values)

	// Second engage without an intervening disengage: no re-arm.
	if err := m.Engage(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(port.writes) != writesAfterFirst {
		t.Errorf("second engage wrote %d extra commands", len(port.writes)-writesAfterFirst)
	}
	if len(rail.values) != railAfterFirst {
		t.Error("second engage touched the rail")
	}
}

func TestDisengageOrder(t *testing.T) {
	port := &recordingPort{}
	rail := &railRecorder{}
	m := newMaestroWithPort(port, rail.set)

	m.Engage()
	port.writes = nil

	if err := m.Disengage(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Neutral both servos before releasing either, rail down last.
	want := [][]byte{
		setTargetBytes(ChannelLeft, targetNeutral),
		setTargetBytes(ChannelRight, targetNeutral),
		setTargetBytes(ChannelLeft, targetRelease),
		setTargetBytes(ChannelRight, targetRelease),
	}
	assertWrites(t, port.writes, want)
	if len(rail.values) != 2 || rail.values[1] {
		t.Errorf("rail: got %v, want [true false]", rail.values)
	}
}

func TestDisengageWithoutEngage(t *testing.T) {
	port := &recordingPort{}
	rail := &railRecorder{}
	m := newMaestroWithPort(port, rail.set)

	// Released drive: disengage is a no-op (the loop asserts disengage on
	// every switch-off cycle).
	if err := m.Disengage(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(port.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(port.writes))
	}
	if len(rail.values) != 0 {
		t.Errorf("expected no rail writes, got %v", rail.values)
	}
}

func TestEngageDisengageCycle(t *testing.T) {
	port := &recordingPort{}
	rail := &railRecorder{}
	m := newMaestroWithPort(port, rail.set)

	m.Engage()
	m.Disengage()
	port.writes = nil

	// Drive can be re-armed after a clean disengage.
	if err := m.Engage(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]byte{
		setTargetBytes(ChannelLeft, targetLeftForward),
		setTargetBytes(ChannelRight, targetRightForward),
	}
	assertWrites(t, port.writes, want)
}

func TestStartStir(t *testing.T) {
	port := &recordingPort{}
	m := newMaestroWithPort(port, (&railRecorder{}).set)

	if err := m.StartStir(60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]byte{setTargetBytes(ChannelStir, targetNeutral+60*8)}
	assertWrites(t, port.writes, want)
}

func TestStartStirSpeedRange(t *testing.T) {
	m := newMaestroWithPort(&recordingPort{}, (&railRecorder{}).set)
	if err := m.StartStir(-1); err == nil {
		t.Error("expected error for negative speed")
	}
	if err := m.StartStir(101); err == nil {
		t.Error("expected error for speed above 100")
	}
}

func TestEngageWriteError(t *testing.T) {
	port := &recordingPort{err: errors.New("port gone")}
	m := newMaestroWithPort(port, (&railRecorder{}).set)

	if err := m.Engage(); err == nil {
		t.Fatal("expected error from failing port")
	}
	// A failed engage must not mark the drive armed.
	if m.armed {
		t.Error("drive marked armed after failed engage")
	}
}

func TestClose(t *testing.T) {
	port := &recordingPort{}
	m := newMaestroWithPort(port, (&railRecorder{}).set)
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !port.closed {
		t.Error("port should be closed")
	}
}

func assertWrites(t *testing.T, got, want [][]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("writes: got %d commands, want %d (%x vs %x)", len(got), len(want), got, want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Errorf("write %d: got %x, want %x", i, got[i], want[i])
			continue
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("write %d: got %x, want %x", i, got[i], want[i])
				break
			}
		}
	}
}
