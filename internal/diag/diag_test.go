package diag

import (
	"fmt"
	"testing"
)

// capture redirects logf and restores it on cleanup.
func capture(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := logf
	origLevel := level
	logf = func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	}
	t.Cleanup(func() {
		logf = orig
		level = origLevel
	})
	return &lines
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"none", LevelNone},
		{"light", LevelLight},
		{"voltage", LevelVoltage},
		{"timing", LevelTiming},
		{"all", LevelAll},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogfAll(t *testing.T) {
	lines := capture(t)
	SetLevel(LevelAll)

	Logf(Light, "level=%d", 1000)
	Logf(Voltage, "battery=%.1fV", 6.2)
	Logf(Timing, "run took %ds", 42)

	if len(*lines) != 3 {
		t.Fatalf("expected 3 lines at level all, got %d", len(*lines))
	}
	if (*lines)[0] != "light: level=1000" {
		t.Errorf("unexpected line: %q", (*lines)[0])
	}
}

func TestLogfNone(t *testing.T) {
	lines := capture(t)
	SetLevel(LevelNone)

	Logf(Light, "level=%d", 1000)
	Logf(Voltage, "x")
	Logf(Timing, "x")

	if len(*lines) != 0 {
		t.Errorf("expected no lines at level none, got %d", len(*lines))
	}
}

func TestLogfSingleCategory(t *testing.T) {
	lines := capture(t)
	SetLevel(LevelVoltage)

	Logf(Light, "x")
	Logf(Voltage, "battery low")
	Logf(Timing, "x")

	if len(*lines) != 1 {
		t.Fatalf("expected 1 line at level voltage, got %d", len(*lines))
	}
	if (*lines)[0] != "voltage: battery low" {
		t.Errorf("unexpected line: %q", (*lines)[0])
	}
}
