package pvclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// LoadReservedModules fills the reserved modules cache from `GET modules`.
//
// On a non-2xx status the cache keeps its current value and a [StatusError] is returned.
// Every failure is logged and dispatched as [OnLoadFailed].
//
// Args:
//   - ctx: The context of the request.
//   - api: The API to query.
//   - store: The store to fill.
//
// Returns:
//   - error: An error if the cache could not be loaded.
func LoadReservedModules(ctx context.Context, api *API, store *Store) error {
	modules, err := api.ReservedModules(ctx)
	if err != nil {
		return store.loadFailed(API_MODULES, err)
	}

	store.SetReservedModules(modules)
	return nil
}

// LoadElements fills the element ownership cache from `GET elements`.
//
// On a non-2xx status the cache keeps its current value and a [StatusError] is returned.
// Every failure is logged and dispatched as [OnLoadFailed].
//
// Args:
//   - ctx: The context of the request.
//   - api: The API to query.
//   - store: The store to fill.
//
// Returns:
//   - error: An error if the cache could not be loaded.
func LoadElements(ctx context.Context, api *API, store *Store) error {
	db, err := api.Elements(ctx)
	if err != nil {
		return store.loadFailed(API_ELEMENTS, err)
	}

	store.SetElements(db)
	return nil
}

// LoadUser fills the current user cache from `GET welcome`.
//
// An anonymous session (empty 2xx body) leaves the cache absent and is not an error.
// On a non-2xx status the cache keeps its current value and a [StatusError] is returned.
//
// Args:
//   - ctx: The context of the request.
//   - api: The API to query.
//   - store: The store to fill.
//
// Returns:
//   - error: An error if the cache could not be loaded.
func LoadUser(ctx context.Context, api *API, store *Store) error {
	login, err := api.Welcome(ctx)
	if err != nil {
		return store.loadFailed(API_WELCOME, err)
	}

	if login == nil {
		log.Debug().Str("Name", "Store").Msg("Anonymous session")
		return nil
	}

	store.SetUser(login)
	return nil
}

// loadFailed logs a failed load, notifies the handlers and returns the wrapped error.
func (s *Store) loadFailed(endpoint string, err error) error {
	event := &Event{Type: OnLoadFailed, Endpoint: endpoint, Error: err}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		event.Status = statusErr.Status
		log.Warn().Str("Name", "Store").Str("Endpoint", endpoint).Int("Status", int(statusErr.Status)).Msg("Cache not replaced")
	} else {
		log.Error().Str("Name", "Store").Str("Endpoint", endpoint).Err(err).Msg("Cache load failed")
	}

	s.Dispatch(event)

	return fmt.Errorf("load %s: %w", endpoint, err)
}
