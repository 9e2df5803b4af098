package puppet

import "github.com/akmonengine/puppet/live2d"

const (
	MODEL_MISSING EventType = iota
	MODEL_LOAD_FAILED
	MODELS_CREATED
	FILTER_CHANGED
	DISPLAY_MODE_CHANGED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ModelMissingEvent reports a declared model file that does not exist.
// The sub-model is left out of the active set.
type ModelMissingEvent struct {
	Index int
	Path  string
}

func (e ModelMissingEvent) Type() EventType { return MODEL_MISSING }

type ModelLoadFailedEvent struct {
	Index int
	Path  string
	Err   error
}

func (e ModelLoadFailedEvent) Type() EventType { return MODEL_LOAD_FAILED }

type ModelsCreatedEvent struct {
	Count int
}

func (e ModelsCreatedEvent) Type() EventType { return MODELS_CREATED }

type FilterChangedEvent struct {
	Name  string
	Value float64
}

func (e FilterChangedEvent) Type() EventType { return FILTER_CHANGED }

type DisplayModeChangedEvent struct {
	Mode live2d.DisplayMode
}

func (e DisplayModeChangedEvent) Type() EventType { return DISPLAY_MODE_CHANGED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers events during an operation and delivers them when it ends
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 8),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	// listeners may trigger operations that emit again
	pending := e.buffer
	e.buffer = nil

	for _, event := range pending {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
}
