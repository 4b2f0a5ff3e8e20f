// pvclient package is a client for the PV element reservation API. It wraps the REST endpoints under `/pv/api/`
// behind a small set of typed request functions and keeps the reference data the UI needs in a single [Store].
//
// Key Features:
//   - Typed Requests: [Get], [Post], [Patch] and [Delete] return a [Response] whose body decodes into a static type.
//   - Session Cookies: every request carries the session cookie issued by the external login page.
//   - Reference Caches: reserved modules, element ownership and the current user, loaded once per session.
//   - Lookups: availability checks, identifier resolution and suggestions over the current snapshot.
//   - Change Handlers: callbacks invoked whenever a cache is replaced.
//
// Usage Example:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    pv "github.com/n0h4rt/pvclient"
//	)
//
//	func main() {
//	    config := &pv.Config{
//	        BaseURL: "https://pv.example.org",
//	        Session: "session-cookie-value",
//	    }
//
//	    app := pv.New(config)
//	    if err := app.Initialize(); err != nil {
//	        panic(err)
//	    }
//
//	    // Loads the caches. Failures are logged and returned, the caches keep their defaults.
//	    if err := app.Start(context.Background()).Wait(); err != nil {
//	        fmt.Println(err)
//	    }
//
//	    fmt.Println(app.Store.IsAvailable("pv-a1"), app.Store.Resolve("pv-a2"))
//	}
package pvclient
