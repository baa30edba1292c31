package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBadEntryShape = errors.New("ledger entry must be a number or a sub-task map")

type entryKind int

const (
	entryUnset entryKind = iota
	entryNumeric
	entrySubtasks
)

// Entry is a single day's recorded progress: either a numeric magnitude
// (0/1 for checkbox habits, any non-negative amount for quantitative ones)
// or a per-micro-habit boolean map. The zero value means nothing was
// recorded for that day.
type Entry struct {
	kind     entryKind
	numeric  float64
	subtasks map[string]bool
}

func NumericEntry(v float64) Entry {
	if v < 0 {
		v = 0
	}
	return Entry{kind: entryNumeric, numeric: v}
}

func SubtaskEntry(done map[string]bool) Entry {
	m := make(map[string]bool, len(done))
	for id, v := range done {
		m[id] = v
	}
	return Entry{kind: entrySubtasks, subtasks: m}
}

func (e Entry) IsSet() bool {
	return e.kind != entryUnset
}

// Numeric returns the recorded magnitude, treating unset and sub-task
// entries as 0.
func (e Entry) Numeric() float64 {
	if e.kind != entryNumeric {
		return 0
	}
	return e.numeric
}

func (e Entry) Subtask(microID string) bool {
	if e.kind != entrySubtasks {
		return false
	}
	return e.subtasks[microID]
}

func (e Entry) subtaskCopy() map[string]bool {
	m := make(map[string]bool, len(e.subtasks))
	for id, v := range e.subtasks {
		m[id] = v
	}
	return m
}

func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case entryNumeric:
		return json.Marshal(e.numeric)
	case entrySubtasks:
		return json.Marshal(e.subtasks)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number or an object of micro-habit id to
// bool. Plain booleans are tolerated as 1/0: early ledgers recorded
// checkbox days as true/false and old entries must stay readable.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*e = NumericEntry(n)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*e = NumericEntry(1)
		} else {
			*e = NumericEntry(0)
		}
		return nil
	}

	var m map[string]bool
	if err := json.Unmarshal(data, &m); err == nil {
		*e = Entry{kind: entrySubtasks, subtasks: m}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrBadEntryShape, string(data))
}

// Ledger maps YYYY-MM-DD date keys to recorded progress. Keys are created
// lazily, only when a date is interacted with.
type Ledger map[string]Entry

func (l Ledger) On(dateKey string) Entry {
	return l[dateKey]
}
