// Package telemetry defines the typed event structs that flow over the
// WebSocket connection between horizond and its clients. These types
// document the event schema; internal code broadcasts the same shapes as
// map[string]any where convenient.
package telemetry

import "time"

// EventType identifies the kind of WebSocket event.
type EventType string

const (
	EventHeartbeat EventType = "heartbeat"
	EventState     EventType = "state"
	EventLog       EventType = "log"
	EventWindows   EventType = "windows_computed"
)

// Event is the base envelope shared by every event type.
type Event struct {
	Type EventType `json:"type"`
	TS   string    `json:"ts"`
}

// NowTS returns the current UTC time as an RFC 3339 nano string, matching
// the timestamp format used across all events.
func NowTS() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Heartbeat is sent periodically so clients can detect connectivity and
// monitor daemon uptime.
type Heartbeat struct {
	Event
	State         string `json:"state"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// StateTransition is emitted whenever the daemon moves between operating
// states (e.g. IDLE -> PREDICTING).
type StateTransition struct {
	Event
	From string `json:"from"`
	To   string `json:"to"`
}

// LogLine carries a human-readable log message at a severity level.
type LogLine struct {
	Event
	Level   string `json:"level"`
	Message string `json:"message"`
}

// WindowsComputed announces a finished prediction run: how many windows
// were found, over what range, and when the next visible window starts.
type WindowsComputed struct {
	Event
	Windows    int    `json:"windows"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
	NextStart  string `json:"next_start,omitempty"`
}
