package pvclient

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application is the composition root of the client.
//
// It builds the [API] and the [Store] from a [Config] and starts the cache loaders exactly once.
// UI code receives the Store from here instead of reaching for package-level state.
type Application struct {
	Config     *Config            // Config holds the configuration for the application.
	API        *API               // API is the REST client, set by Initialize.
	Store      *Store             // Store holds the reference data caches, set by Initialize.
	httpClient *http.Client       // httpClient is an optional HTTP client for the API.
	handlers   []Handler          // handlers are registered on the store during Initialize.
	isDebug    bool               // isDebug lowers the global log level to debug.
	context    context.Context    // Context for running the loaders.
	cancelCtx  context.CancelFunc // Function for stopping the application.
	wg         sync.WaitGroup     // wg tracks the running loaders.
	errMu      sync.Mutex         // errMu guards errs.
	errs       []error            // errs collects the loader errors.

	mu          sync.Mutex // mu guards initialized and started.
	initialized bool       // initialized indicates whether the application has been initialized.
	started     bool       // started indicates whether the loaders have been started.
}

// Initialize builds the API and the store.
//
// Returns:
//   - error: An error if the API cannot be created from the configuration.
func (app *Application) Initialize() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.initialized {
		return nil
	}
	if app.Config == nil {
		app.Config = &Config{}
	}

	if app.isDebug || app.Config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	api, err := NewAPI(app.Config.BaseURL, app.Config.Session, app.httpClient)
	if err != nil {
		return err
	}

	app.API = api
	app.Store = NewStore()
	for _, handler := range app.handlers {
		app.Store.AddHandler(handler)
	}
	app.initialized = true

	return nil
}

// Start launches one loader per cache and returns immediately.
// It may be called once; the loaders run until they finish or ctx is done.
//
// Args:
//   - ctx: The context for running the loaders.
//
// Returns:
//   - *Application: The application instance for method chaining.
func (app *Application) Start(ctx context.Context) *Application {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.initialized {
		panic("the application is not initialized")
	}
	if app.started {
		log.Warn().Str("Name", "Application").Err(ErrAlreadyStarted).Msg("Start ignored")
		return app
	}
	app.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	app.context, app.cancelCtx = context.WithCancel(ctx)

	app.Store.Dispatch(&Event{Type: OnStart})

	loaders := []func(context.Context, *API, *Store) error{
		LoadReservedModules,
		LoadElements,
		LoadUser,
	}
	loadCtx := app.context
	for _, load := range loaders {
		app.wg.Add(1)
		go func(load func(context.Context, *API, *Store) error) {
			defer app.wg.Done()

			if err := load(loadCtx, app.API, app.Store); err != nil {
				app.errMu.Lock()
				app.errs = append(app.errs, err)
				app.errMu.Unlock()
			}
		}(load)
	}

	return app
}

// Wait blocks until every loader has finished.
//
// Returns:
//   - error: The joined loader errors, nil if every cache was loaded.
func (app *Application) Wait() error {
	app.mu.Lock()
	started := app.started
	app.mu.Unlock()

	if !started {
		return ErrNotStarted
	}

	app.wg.Wait()

	app.errMu.Lock()
	defer app.errMu.Unlock()

	return errors.Join(app.errs...)
}

// Stop cancels the running loaders and waits for them.
func (app *Application) Stop() {
	app.mu.Lock()
	started := app.started
	app.mu.Unlock()

	if !started {
		return
	}

	app.cancelCtx()
	app.wg.Wait()
	app.Store.Dispatch(&Event{Type: OnStop})
}

// GetContext returns the [context.Context] of the application.
//
// Returns:
//   - context.Context: The context of the application, nil before Start.
func (app *Application) GetContext() context.Context {
	app.mu.Lock()
	defer app.mu.Unlock()

	return app.context
}

// New creates a new instance of the [Application] with the provided configuration.
//
// Args:
//   - config: The configuration for the application.
//   - options: Optional settings, see [Option].
//
// Returns:
//   - *Application: A new instance of the [Application].
func New(config *Config, options ...Option) *Application {
	app := &Application{
		Config:   config,
		handlers: []Handler{},
	}

	for _, option := range options {
		option(app)
	}

	return app
}
