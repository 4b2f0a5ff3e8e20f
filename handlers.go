package pvclient

// Handler is an interface that defines the methods for handling events.
type Handler interface {
	Check(*Event) bool
	Invoke(*Event, *Store)
}

// Callback is a function type that represents a callback function for handling events.
type Callback func(*Event, *Store)

// TypeHandler is a struct that implements the Handler interface for handling events of specific types.
type TypeHandler struct {
	Callback Callback
	Type     EventType
}

// Check checks if the event is of one of the specified types.
func (th *TypeHandler) Check(event *Event) bool {
	return th.Type&event.Type != 0
}

// Invoke executes the callback function for the event.
func (th *TypeHandler) Invoke(event *Event, store *Store) {
	th.Callback(event, store)
}

// NewTypeHandler returns a new `TypeHandler`.
// The event type may combine several types, e.g. `OnElementsLoaded | OnLoadFailed`.
func NewTypeHandler(callback Callback, eventType EventType) Handler {
	return &TypeHandler{
		Callback: callback,
		Type:     eventType,
	}
}
