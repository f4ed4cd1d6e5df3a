// Package diag is the car's category-filtered diagnostics sink. The
// verbosity is chosen once at startup and never changes during a session.
// Unconditional operational messages go through the standard logger
// directly; this package only gates the chatty per-cycle categories.
package diag

import (
	"fmt"
	"log"
)

// Category classifies a diagnostic message.
type Category int

const (
	Light   Category = iota // per-cycle light levels
	Voltage                 // rail voltages
	Timing                  // run durations
)

// Level selects which categories are emitted.
type Level int

const (
	LevelNone Level = iota
	LevelLight
	LevelVoltage
	LevelTiming
	LevelAll
)

var level = LevelAll

// logf is swapped out by tests.
var logf = log.Printf

// SetLevel fixes the verbosity for the session.
func SetLevel(l Level) {
	level = l
}

// ParseLevel maps a flag value onto a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "none":
		return LevelNone, nil
	case "light":
		return LevelLight, nil
	case "voltage":
		return LevelVoltage, nil
	case "timing":
		return LevelTiming, nil
	case "all":
		return LevelAll, nil
	}
	return 0, fmt.Errorf("unknown debug level %q (none, light, voltage, timing, all)", s)
}

// Logf emits a message if the session verbosity covers the category.
func Logf(cat Category, format string, v ...interface{}) {
	if !enabled(cat) {
		return
	}
	logf(prefix(cat)+format, v...)
}

func enabled(cat Category) bool {
	if level == LevelAll {
		return true
	}
	switch cat {
	case Light:
		return level == LevelLight
	case Voltage:
		return level == LevelVoltage
	case Timing:
		return level == LevelTiming
	}
	return false
}

func prefix(cat Category) string {
	switch cat {
	case Light:
		return "light: "
	case Voltage:
		return "voltage: "
	case Timing:
		return "timing: "
	}
	return ""
}
