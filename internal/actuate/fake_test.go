package actuate

import (
	"errors"
	"testing"
)

func TestFakeDriveIdempotentEngage(t *testing.T) {
	f := NewFakeDrive()

	f.Engage()
	f.Engage()

	if f.EngageCalls != 2 {
		t.Errorf("engage calls: got %d, want 2", f.EngageCalls)
	}
	// Exactly one arm side effect for back-to-back engages.
	if f.Arms != 1 {
		t.Errorf("arms: got %d, want 1", f.Arms)
	}
	if !f.Engaged {
		t.Error("drive should be engaged")
	}
}

func TestFakeDriveIdempotentDisengage(t *testing.T) {
	f := NewFakeDrive()

	f.Disengage() // released drive: call counted, no release
	f.Engage()
	f.Disengage()
	f.Disengage()

	if f.DisengageCalls != 3 {
		t.Errorf("disengage calls: got %d, want 3", f.DisengageCalls)
	}
	if f.Releases != 1 {
		t.Errorf("releases: got %d, want 1", f.Releases)
	}
	if f.Engaged {
		t.Error("drive should be released")
	}
}

func TestFakeDriveStir(t *testing.T) {
	f := NewFakeDrive()
	f.StartStir(60)
	if len(f.StirSpeeds) != 1 || f.StirSpeeds[0] != 60 {
		t.Errorf("stir speeds: got %v, want [60]", f.StirSpeeds)
	}
}

func TestFakeDriveErrors(t *testing.T) {
	f := NewFakeDrive()
	f.EngageError = errors.New("engage fault")
	if err := f.Engage(); err == nil {
		t.Error("expected engage error")
	}
	if f.Engaged || f.Arms != 0 {
		t.Error("failed engage must not change state")
	}
}
