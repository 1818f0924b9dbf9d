package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventParamsUpdate asks the host to apply new parameter values.
const EventParamsUpdate = "params:update"

var ErrNoEvent = errors.New("empty event name")

// Validator decides whether a listener accepts the default behavior of an
// event. A nil Validator accepts.
type Validator func(values map[string]any) bool

// Callback is notified after an event has been handled.
type Callback func(optIn bool, values map[string]any)

// Update records the outcome of one emission.
type Update struct {
	ID      uuid.UUID      `json:"id"`
	Event   string         `json:"event"`
	OptIn   bool           `json:"optIn"`
	Applied []string       `json:"applied"`
	Values  map[string]any `json:"values"`
	At      time.Time      `json:"at"`
}

type listener struct {
	id       uint64
	validate Validator
	callback Callback
}

// On registers a listener for an event and returns a function that removes it.
func (h *Host) On(event string, validate Validator, callback Callback) func() {
	h.mu.Lock()
	h.nextID++
	l := &listener{id: h.nextID, validate: validate, callback: callback}
	h.listeners[event] = append(h.listeners[event], l)
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.listeners[event] = slices.DeleteFunc(h.listeners[event], func(x *listener) bool { return x.id == l.id })
	}
}

// Emit delivers an event to its listeners. Every validator must accept for
// the emission to opt in to the default behavior; for params:update that is
// applying the values whose ids are defined. Callbacks run after the values
// are applied and outside the host lock.
func (h *Host) Emit(event string, values map[string]any) (Update, error) {
	if event == "" {
		return Update{}, ErrNoEvent
	}
	values = maps.Clone(values)
	if values == nil {
		values = map[string]any{}
	}

	h.mu.RLock()
	ls := slices.Clone(h.listeners[event])
	h.mu.RUnlock()

	optIn := true
	for _, l := range ls {
		if l.validate != nil && !l.validate(maps.Clone(values)) {
			optIn = false
		}
	}

	u := Update{ID: uuid.New(), Event: event, OptIn: optIn, Applied: []string{}, Values: values, At: time.Now().UTC()}
	if optIn && event == EventParamsUpdate {
		h.mu.Lock()
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if _, known := h.index[key]; known {
				h.raw[key] = copyValue(values[key])
				u.Applied = append(u.Applied, key)
			}
		}
		h.mu.Unlock()
	}

	for _, l := range ls {
		if l.callback != nil {
			l.callback(optIn, maps.Clone(values))
		}
	}

	h.log.Debug().
		Str("event", event).
		Str("update_id", u.ID.String()).
		Bool("opt_in", optIn).
		Strs("applied", u.Applied).
		Msg("event emitted")
	return u, nil
}

// StringifyParams renders values as indented JSON with keys in order. Big
// integers are written as decimal strings.
func StringifyParams(values map[string]any) (string, error) {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if b, ok := v.(*big.Int); ok && b != nil {
			out[k] = b.String()
			continue
		}
		out[k] = v
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("stringify params: %w", err)
	}
	return string(raw), nil
}
