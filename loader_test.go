package pvclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/n0h4rt/pvclient/models"
	"github.com/n0h4rt/pvclient/pvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(store *Store, eventType EventType) *[]*Event {
	events := &[]*Event{}
	store.AddHandler(NewTypeHandler(func(event *Event, _ *Store) {
		*events = append(*events, event)
	}, eventType))
	return events
}

func TestLoadElements(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetElements(models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}, Reserved: []string{"pv-b2"}})

	store := NewStore()
	loaded := collectEvents(store, OnElementsLoaded)

	require.NoError(t, LoadElements(context.Background(), newTestAPI(t, srv.URL, ""), store))

	assert.Equal(t, models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}, Reserved: []string{"pv-b2"}}, store.Elements())
	assert.Len(t, *loaded, 1)
}

func TestLoadElements_FailureKeepsDefault(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.ForceStatus(http.MethodGet, API_ELEMENTS, http.StatusInternalServerError)

	store := NewStore()
	loaded := collectEvents(store, OnElementsLoaded)
	failed := collectEvents(store, OnLoadFailed)

	err := LoadElements(context.Background(), newTestAPI(t, srv.URL, ""), store)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, StatusInternalServerError, statusErr.Status)
	assert.ErrorIs(t, err, ErrRequestFailed)

	db := store.Elements()
	assert.Equal(t, map[string]string{}, db.Taken)
	assert.Equal(t, []string{}, db.Reserved)
	assert.Empty(t, *loaded)

	require.Len(t, *failed, 1)
	assert.Equal(t, API_ELEMENTS, (*failed)[0].Endpoint)
	assert.Equal(t, StatusInternalServerError, (*failed)[0].Status)
	assert.ErrorIs(t, (*failed)[0].Error, ErrRequestFailed)
}

func TestLoadElements_FailureKeepsCurrentValue(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetElements(models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}})

	store := NewStore()
	api := newTestAPI(t, srv.URL, "")
	require.NoError(t, LoadElements(context.Background(), api, store))

	srv.ForceStatus(http.MethodGet, API_ELEMENTS, http.StatusBadGateway)
	assert.Error(t, LoadElements(context.Background(), api, store))
	assert.Equal(t, "Ana", store.Elements().Taken["pv-a1"])
}

func TestLoadReservedModules(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetModules(models.ReservedModules{"mod-1": "Ana", "mod-2": "Bo"})

	store := NewStore()
	require.NoError(t, LoadReservedModules(context.Background(), newTestAPI(t, srv.URL, ""), store))
	assert.Equal(t, models.ReservedModules{"mod-1": "Ana", "mod-2": "Bo"}, store.ReservedModules())

	srv.ForceStatus(http.MethodGet, API_MODULES, http.StatusNotFound)
	failed := collectEvents(store, OnLoadFailed)
	assert.Error(t, LoadReservedModules(context.Background(), newTestAPI(t, srv.URL, ""), store))
	assert.Len(t, store.ReservedModules(), 2)
	require.Len(t, *failed, 1)
	assert.Equal(t, API_MODULES, (*failed)[0].Endpoint)
}

func TestLoadUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":7,"name":"Ana","logged_in":true}`))
	}))
	defer srv.Close()

	store := NewStore()
	loaded := collectEvents(store, OnUserLoaded)

	require.NoError(t, LoadUser(context.Background(), newTestAPI(t, srv.URL, "secret"), store))

	assert.Equal(t, &models.UserLogin{User: models.User{UID: 7, Name: "Ana"}, LoggedIn: true}, store.User())
	assert.Len(t, *loaded, 1)
}

func TestLoadUser_Anonymous(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()

	store := NewStore()
	events := collectEvents(store, OnUserLoaded|OnLoadFailed)

	require.NoError(t, LoadUser(context.Background(), newTestAPI(t, srv.URL, ""), store))
	assert.Nil(t, store.User())
	assert.Empty(t, *events)
}

func TestLoadUser_TransportError(t *testing.T) {
	failure := errors.New("dial failed")
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, failure
	})}
	api, err := NewAPI("https://pv.example.org", "", client)
	require.NoError(t, err)

	store := NewStore()
	failed := collectEvents(store, OnLoadFailed)

	err = LoadUser(context.Background(), api, store)
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, store.User())

	require.Len(t, *failed, 1)
	assert.Equal(t, API_WELCOME, (*failed)[0].Endpoint)
	assert.Equal(t, HTTPStatus(0), (*failed)[0].Status)
}
