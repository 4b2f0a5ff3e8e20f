package pvclient

import (
	"sync"

	"github.com/n0h4rt/pvclient/utils"
	"github.com/rs/zerolog/log"
)

// dispatcher holds the registered handlers of a [Store].
type dispatcher struct {
	handlers []Handler  // handlers contains the registered event handlers.
	mu       sync.Mutex // mu guards handlers.
}

// add registers a handler.
func (d *dispatcher) add(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = append(d.handlers, handler)
}

// remove unregisters a handler.
func (d *dispatcher) remove(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = utils.Remove(d.handlers, handler)
}

// dispatch invokes every handler whose Check accepts the event.
// Handlers run on the caller's goroutine; a panicking handler is logged and does not stop the others.
func (d *dispatcher) dispatch(event *Event, store *Store) {
	d.mu.Lock()
	handlers := append([]Handler(nil), d.handlers...)
	d.mu.Unlock()

	for _, handler := range handlers {
		if !handler.Check(event) {
			continue
		}

		func() {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Str("Event", event.Type.String()).
						Interface("Panic", err).
						Msg("Handler panicked.")
				}
			}()

			handler.Invoke(event, store)
		}()
	}
}
