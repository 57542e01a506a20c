package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota
	LevelError        // command spans kept in the ring, dumped on failure
	LevelPhase        // command and batch boundaries
	LevelDetail       // per-expression jobs
	LevelDebug        // everything
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// UnmarshalText lets Level be decoded from config files.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ShouldEmit reports whether events of the given scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelError:
		return scope <= ScopeCommand
	case LevelPhase:
		return scope <= ScopeBatch
	case LevelDetail:
		return scope <= ScopeJob
	case LevelDebug:
		return true
	default:
		return false
	}
}
