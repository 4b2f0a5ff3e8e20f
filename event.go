package pvclient

import "strings"

// EventType represents the type of an event.
type EventType int64

// Event types.
const (
	// Event triggered when the application starts.
	OnStart EventType = 1 << iota
	// Event triggered when the application stops.
	OnStop
	// Event triggered when the reserved modules cache is replaced.
	OnModulesLoaded
	// Event triggered when the element ownership cache is replaced.
	OnElementsLoaded
	// Event triggered when the current user cache is replaced.
	OnUserLoaded
	// Event triggered when a cache could not be loaded.
	OnLoadFailed
)

// OnCacheReplaced matches every cache replacement.
const OnCacheReplaced = OnModulesLoaded | OnElementsLoaded | OnUserLoaded

var eventTypeNames = []struct {
	t    EventType
	name string
}{
	{OnStart, "OnStart"},
	{OnStop, "OnStop"},
	{OnModulesLoaded, "OnModulesLoaded"},
	{OnElementsLoaded, "OnElementsLoaded"},
	{OnUserLoaded, "OnUserLoaded"},
	{OnLoadFailed, "OnLoadFailed"},
}

// String returns the names of the set bits joined by "|".
func (t EventType) String() string {
	var names []string
	for _, entry := range eventTypeNames {
		if t&entry.t != 0 {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, "|")
}

// Event describes a change of the [Store] or of the [Application] lifecycle.
type Event struct {
	Type     EventType  // Type is the type of the event.
	Endpoint string     // Endpoint is the endpoint the cache is loaded from, empty for lifecycle events.
	Status   HTTPStatus // Status is the response status for failed loads, zero when no response was received.
	Error    error      // Error is the load error for [OnLoadFailed].
}
