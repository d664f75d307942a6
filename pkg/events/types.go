package events

import (
	"encoding/json"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

// Event name constants
const (
	Invalidated = "levelbar.invalidated"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// InvalidatedEvent is the typed payload for levelbar.invalidated. It is
// published every time the level bar needs to be redrawn.
type InvalidatedEvent struct {
	Options levelbar.Options `json:"options"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Ts      int64            `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// If Data is empty, it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
