package pvclient

import (
	"sync"

	"github.com/n0h4rt/pvclient/models"
	"github.com/rs/zerolog/log"
)

// Store owns the reference data caches: reserved modules, element ownership and the current user.
//
// Each cache starts at its default (empty maps, empty list, no user) and is replaced as a whole.
// Readers always get copies, so a snapshot never changes under them and never aliases store state.
// Replacements are announced to the registered handlers.
type Store struct {
	modules    SyncMap[string, string] // modules is the reserved modules cache.
	elements   models.ElementsDB       // elements is the element ownership cache.
	user       *models.UserLogin       // user is the current user cache, nil until loaded.
	mu         sync.RWMutex            // mu guards elements and user.
	dispatcher dispatcher              // dispatcher notifies handlers about replacements.
}

// NewStore creates a Store holding the default values.
func NewStore() *Store {
	return &Store{
		modules:  NewSyncMap[string, string](),
		elements: models.NewElementsDB(),
	}
}

// AddHandler registers a handler for store events.
//
// Returns:
//   - *Store: The store instance for method chaining.
func (s *Store) AddHandler(handler Handler) *Store {
	s.dispatcher.add(handler)
	return s
}

// RemoveHandler unregisters a handler.
//
// Returns:
//   - *Store: The store instance for method chaining.
func (s *Store) RemoveHandler(handler Handler) *Store {
	s.dispatcher.remove(handler)
	return s
}

// Dispatch sends an event to the registered handlers.
func (s *Store) Dispatch(event *Event) {
	s.dispatcher.dispatch(event, s)
}

// ReservedModules returns a copy of the reserved modules cache.
func (s *Store) ReservedModules() models.ReservedModules {
	return s.modules.Snapshot()
}

// ReservedModule returns the owner of a single reserved module.
//
// Args:
//   - id: The module identifier.
//
// Returns:
//   - string: The owner name.
//   - bool: True if the module is reserved in the current snapshot.
func (s *Store) ReservedModule(id string) (string, bool) {
	return s.modules.Get(id)
}

// ModuleCount returns the number of reserved modules.
func (s *Store) ModuleCount() int {
	return s.modules.Len()
}

// SetReservedModules replaces the reserved modules cache.
func (s *Store) SetReservedModules(modules models.ReservedModules) {
	s.modules.Replace(modules)

	log.Debug().Str("Name", "Store").Int("Modules", len(modules)).Msg("Reserved modules replaced")
	s.Dispatch(&Event{Type: OnModulesLoaded, Endpoint: API_MODULES})
}

// Elements returns a copy of the element ownership cache.
func (s *Store) Elements() models.ElementsDB {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.elements.Clone()
}

// SetElements replaces the element ownership cache.
func (s *Store) SetElements(db models.ElementsDB) {
	db = db.Clone()

	s.mu.Lock()
	s.elements = db
	s.mu.Unlock()

	log.Debug().Str("Name", "Store").Int("Taken", len(db.Taken)).Int("Reserved", len(db.Reserved)).Msg("Elements replaced")
	s.Dispatch(&Event{Type: OnElementsLoaded, Endpoint: API_ELEMENTS})
}

// User returns a copy of the current user, or nil while it is not loaded.
func (s *Store) User() *models.UserLogin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// SetUser replaces the current user cache. A nil user resets it to absent.
func (s *Store) SetUser(user *models.UserLogin) {
	var next *models.UserLogin
	if user != nil {
		copied := *user
		next = &copied
	}

	s.mu.Lock()
	s.user = next
	s.mu.Unlock()

	log.Debug().Str("Name", "Store").Bool("Present", next != nil).Msg("User replaced")
	s.Dispatch(&Event{Type: OnUserLoaded, Endpoint: API_WELCOME})
}

// IsAvailable reports whether the element is neither taken nor reserved in the current snapshot.
func (s *Store) IsAvailable(mid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.elements.IsAvailable(mid)
}

// Resolve returns the [models.Element] view of an identifier in the current snapshot.
// Taken wins over reserved when the identifier appears in both.
func (s *Store) Resolve(mid string) models.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.elements.Resolve(mid)
}
