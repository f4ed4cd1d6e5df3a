package gpio

import (
	"errors"
	"testing"
)

func TestFakePanelReadSwitch(t *testing.T) {
	f := NewFakePanel([]bool{false, true, true})

	want := []bool{false, true, true, true} // last value repeats
	for i, w := range want {
		got, err := f.ReadSwitch()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakePanelNoSamples(t *testing.T) {
	f := NewFakePanel(nil)
	if _, err := f.ReadSwitch(); err == nil {
		t.Error("expected error with no switch samples")
	}
}

func TestFakePanelReadError(t *testing.T) {
	f := NewFakePanel([]bool{true})
	f.ReadError = errors.New("simulated error")
	if _, err := f.ReadSwitch(); err == nil {
		t.Error("expected injected error to be returned")
	}
}

func TestFakePanelOutputs(t *testing.T) {
	f := NewFakePanel(nil)

	// Indicators start high, matching the real panel.
	if !f.BatteryOK || !f.FuelCellOK {
		t.Error("indicators should start high")
	}

	if err := f.SetBatteryOK(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.BatteryOK {
		t.Error("battery indicator should record fault")
	}

	f.SetDriveRail(true)
	f.SetDriveRail(false)
	if len(f.RailWrites) != 2 || !f.RailWrites[0] || f.RailWrites[1] {
		t.Errorf("rail writes: got %v, want [true false]", f.RailWrites)
	}
}

func TestFakePanelClose(t *testing.T) {
	f := NewFakePanel(nil)
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
