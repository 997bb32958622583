package gui

import (
	"sync"

	"jordanella.com/language-gates/internal/lessons"
)

// EventType represents different types of UI events
type EventType int

const (
	EventTypeCatalogReloaded EventType = iota
	EventTypeCatalogFailed
	EventTypeErrorReported
)

// Event carries a catalog change or failure to the UI
type Event struct {
	Type    EventType
	Code    string
	Catalog *lessons.Catalog
	Err     error
	Message string
}

// EventHandler processes events
type EventHandler func(Event)

// EventBus hands events from background goroutines to the UI thread
type EventBus struct {
	handlers map[EventType][]EventHandler
	mu       sync.RWMutex
	dispatch func(func())
}

// NewEventBus creates an event bus. dispatch runs a function on the UI
// thread; the app passes fyne.Do.
func NewEventBus(dispatch func(func())) *EventBus {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
		dispatch: dispatch,
	}
}

// Subscribe registers an event handler for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// Publish delivers an event to its handlers on the UI thread
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	handlers := append([]EventHandler(nil), eb.handlers[event.Type]...)
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	eb.dispatch(func() {
		for _, handler := range handlers {
			handler(event)
		}
	})
}

// CatalogChanged builds the event for a watcher reload result
func CatalogChanged(code string, cat *lessons.Catalog, err error) Event {
	if err != nil {
		return Event{Type: EventTypeCatalogFailed, Code: code, Err: err}
	}
	return Event{Type: EventTypeCatalogReloaded, Code: code, Catalog: cat}
}
