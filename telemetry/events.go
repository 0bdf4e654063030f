// Package telemetry provides portal event logging, windowed stats and
// frame performance tracking.
package telemetry

import "fmt"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPlace EventType = iota
	EventMiss
	EventCooldown
	EventCarveFailed
	EventRestore
	EventTraverse
)

func (t EventType) String() string {
	switch t {
	case EventPlace:
		return "place"
	case EventMiss:
		return "miss"
	case EventCooldown:
		return "cooldown"
	case EventCarveFailed:
		return "carve_failed"
	case EventRestore:
		return "restore"
	case EventTraverse:
		return "traverse"
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// MarshalCSV writes the event type by name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single telemetry event.
type Event struct {
	Frame int32     `csv:"frame"`
	Type  EventType `csv:"type"`
	Color string    `csv:"color"`

	// Optional fields depending on event type
	Surface string  `csv:"surface"`
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	Z       float32 `csv:"z"`
	Detail  string  `csv:"detail"`
}

// NewPlaceEvent creates an event for a placed portal.
func NewPlaceEvent(frame int32, color, surface string, x, y, z float32) Event {
	return Event{Frame: frame, Type: EventPlace, Color: color, Surface: surface, X: x, Y: y, Z: z}
}

// NewMissEvent creates an event for a shot that hit nothing portalable.
func NewMissEvent(frame int32, color string) Event {
	return Event{Frame: frame, Type: EventMiss, Color: color}
}

// NewCooldownEvent creates an event for a shot blocked by the cooldown.
func NewCooldownEvent(frame int32, color string) Event {
	return Event{Frame: frame, Type: EventCooldown, Color: color}
}

// NewCarveFailedEvent creates an event for a rejected placement.
func NewCarveFailedEvent(frame int32, color string, err error) Event {
	return Event{Frame: frame, Type: EventCarveFailed, Color: color, Detail: err.Error()}
}

// NewRestoreEvent creates an event for a portal removed by the player.
func NewRestoreEvent(frame int32, color string) Event {
	return Event{Frame: frame, Type: EventRestore, Color: color}
}

// NewTraverseEvent creates an event for the player passing through a portal.
func NewTraverseEvent(frame int32, color string, x, y, z float32) Event {
	return Event{Frame: frame, Type: EventTraverse, Color: color, X: x, Y: y, Z: z}
}
