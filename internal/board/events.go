package board

import (
	"encoding/json"
	"fmt"
)

// Client-to-server event types. The set is closed: anything else is
// rejected at decode time as protocol misuse.
const (
	EventJoin        = "join-room"
	EventStroke      = "stroke"
	EventClear       = "clear"
	EventGetPresence = "get-presence"
)

// Server-to-client frame types.
const (
	msgInitStrokes = "init-strokes"
	msgStroke      = "stroke"
	msgClear       = "clear"
	msgPresence    = "presence"
	msgError       = "error"
)

// Event is one decoded inbound frame. Type is always one of the Event*
// constants; which other fields are meaningful depends on it.
type Event struct {
	Type   string  `json:"type"`
	RoomID string  `json:"roomId"`
	Name   string  `json:"name,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
}

// DecodeEvent parses an inbound frame and validates its shape. Malformed
// JSON, an unknown type, or a stroke event without a stroke payload all
// fail; callers surface the failure to the offending client only.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("malformed event: %w", err)
	}
	switch ev.Type {
	case EventJoin, EventClear, EventGetPresence:
	case EventStroke:
		if ev.Stroke == nil {
			return Event{}, fmt.Errorf("stroke event missing stroke payload")
		}
	default:
		return Event{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
	return ev, nil
}

type initStrokesFrame struct {
	Type    string   `json:"type"`
	Strokes []Stroke `json:"strokes"`
}

type strokeFrame struct {
	Type   string `json:"type"`
	Stroke Stroke `json:"stroke"`
}

type clearFrame struct {
	Type string `json:"type"`
}

type presenceFrame struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// All frame types marshal cleanly; a failure here is a bug.
		panic(err)
	}
	return b
}

// EncodeInitStrokes builds the catch-up snapshot frame sent to a joiner.
// An empty log encodes as an empty array, not null.
func EncodeInitStrokes(strokes []Stroke) []byte {
	if strokes == nil {
		strokes = []Stroke{}
	}
	return mustMarshal(initStrokesFrame{Type: msgInitStrokes, Strokes: strokes})
}

func EncodeStroke(s Stroke) []byte {
	return mustMarshal(strokeFrame{Type: msgStroke, Stroke: s})
}

func EncodeClear() []byte {
	return mustMarshal(clearFrame{Type: msgClear})
}

// EncodePresence builds a presence frame with names in join order. An
// empty list encodes as an empty array, not null.
func EncodePresence(users []string) []byte {
	if users == nil {
		users = []string{}
	}
	return mustMarshal(presenceFrame{Type: msgPresence, Users: users})
}

func EncodeError(message string) []byte {
	return mustMarshal(errorFrame{Type: msgError, Message: message})
}
