// Package realtime feeds remote changes into the local mirror. Postgres
// triggers publish row changes with NOTIFY; a Listener decodes them and a
// Dispatcher routes each event to the sink registered for its table.
package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/jefanko/app-updates/internal/casing"
)

// EventType is the row operation that produced an event
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row change. Record holds the row with camelCase keys; it is
// nil for deletes and for rows too large for a notification payload.
type Event struct {
	Table  string                 `json:"table"`
	Type   EventType              `json:"type"`
	ID     string                 `json:"id"`
	Record map[string]interface{} `json:"record,omitempty"`
}

// DecodeEvent parses a notification payload and converts the record keys
// from column names to field names
func DecodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode change event: %w", err)
	}
	if ev.Table == "" || ev.ID == "" {
		return Event{}, fmt.Errorf("change event missing table or id")
	}
	switch ev.Type {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return Event{}, fmt.Errorf("unknown change event type: %q", ev.Type)
	}
	if ev.Record != nil {
		ev.Record = casing.MapToCamel(ev.Record)
	}
	return ev, nil
}

// decodeRecord converts a camelCase record into T through its JSON tags
func decodeRecord[T any](record map[string]interface{}) (T, error) {
	var item T
	data, err := json.Marshal(record)
	if err != nil {
		return item, err
	}
	err = json.Unmarshal(data, &item)
	return item, err
}
