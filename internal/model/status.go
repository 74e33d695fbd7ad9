package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RunState is the execution state of the simulation.
type RunState string

const (
	// StateRunning means the simulator is advancing time.
	StateRunning RunState = "running"
	// StatePaused means the simulator is stopped and may be resumed.
	StatePaused RunState = "paused"
	// StateFinished means the simulation has ended and cannot be resumed.
	StateFinished RunState = "finished"
)

// FemtosPerSecond is the resolution of a TimeStamp.
const FemtosPerSecond = 1_000_000_000_000_000

// timeFractionDigits is the fixed number of fractional digits on the wire.
const timeFractionDigits = 15

// ErrInvalidTime is returned for malformed time strings.
var ErrInvalidTime = errors.New("invalid time")

// TimeStamp is a simulation time with femtosecond resolution. It is encoded
// as a fixed-precision decimal string of seconds, never as a float.
type TimeStamp struct {
	Secs   uint64
	Femtos uint64
}

// NewTimeStamp builds a normalized TimeStamp.
func NewTimeStamp(secs, femtos uint64) TimeStamp {
	return TimeStamp{Secs: secs + femtos/FemtosPerSecond, Femtos: femtos % FemtosPerSecond}
}

// ParseTimeStamp parses "S.FFFFFFFFFFFFFFF". Fewer fractional digits are
// accepted and right-padded; more than 15 are rejected.
func ParseTimeStamp(s string) (TimeStamp, error) {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" || (hasFrac && fracPart == "") {
		return TimeStamp{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	secs, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return TimeStamp{}, fmt.Errorf("%w: %q: %w", ErrInvalidTime, s, err)
	}

	if len(fracPart) > timeFractionDigits {
		return TimeStamp{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidTime, s, timeFractionDigits)
	}

	var femtos uint64

	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", timeFractionDigits-len(fracPart))

		femtos, err = strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return TimeStamp{}, fmt.Errorf("%w: %q: %w", ErrInvalidTime, s, err)
		}
	}

	return TimeStamp{Secs: secs, Femtos: femtos}, nil
}

// String renders the time with exactly 15 fractional digits.
func (t TimeStamp) String() string {
	return fmt.Sprintf("%d.%015d", t.Secs, t.Femtos)
}

// Add advances the time by the given number of femtoseconds.
func (t TimeStamp) Add(femtos uint64) TimeStamp {
	return NewTimeStamp(t.Secs, t.Femtos+femtos)
}

// Compare returns -1, 0 or +1.
func (t TimeStamp) Compare(other TimeStamp) int {
	switch {
	case t.Secs < other.Secs:
		return -1
	case t.Secs > other.Secs:
		return 1
	case t.Femtos < other.Femtos:
		return -1
	case t.Femtos > other.Femtos:
		return 1
	}

	return 0
}

// Before reports whether t < other.
func (t TimeStamp) Before(other TimeStamp) bool {
	return t.Compare(other) < 0
}

// After reports whether t > other.
func (t TimeStamp) After(other TimeStamp) bool {
	return t.Compare(other) > 0
}

// MarshalJSON encodes the time as a string.
func (t TimeStamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a time string.
func (t *TimeStamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}

	parsed, err := ParseTimeStamp(s)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// SimulationStatus is a snapshot of the simulator state.
type SimulationStatus struct {
	Status     RunState  `json:"status"`
	LatestTime TimeStamp `json:"latest_time"`
}
