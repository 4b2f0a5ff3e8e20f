package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	pv "github.com/n0h4rt/pvclient"
)

// statusReport summarizes the caches after a full load.
type statusReport struct {
	BaseURL  string   `json:"base_url" yaml:"base_url"`
	User     string   `json:"user" yaml:"user"`
	Modules  int      `json:"modules" yaml:"modules"`
	Taken    int      `json:"taken" yaml:"taken"`
	Reserved int      `json:"reserved" yaml:"reserved"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Load every cache and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			onEvent := pv.NewTypeHandler(func(event *pv.Event, _ *pv.Store) {
				if event.Type == pv.OnLoadFailed {
					log.Debug().Str("Endpoint", event.Endpoint).Str("Status", event.Status.String()).Msg("Load failed")
					return
				}
				log.Debug().Str("Event", event.Type.String()).Str("Endpoint", event.Endpoint).Msg("Cache replaced")
			}, pv.OnCacheReplaced|pv.OnLoadFailed)

			app, err := c.app(pv.WithHandler(onEvent))
			if err != nil {
				return err
			}

			loadErr := app.Start(cmd.Context()).Wait()
			defer app.Stop()

			var failed []string
			if loadErr != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(loadErr, &joined) {
					for _, err := range joined.Unwrap() {
						failed = append(failed, err.Error())
					}
				} else {
					failed = append(failed, loadErr.Error())
				}
			}

			db := app.Store.Elements()
			report := statusReport{
				BaseURL:  app.API.BaseURL,
				User:     "anonymous",
				Modules:  app.Store.ModuleCount(),
				Taken:    len(db.Taken),
				Reserved: len(db.Reserved),
				Errors:   failed,
			}
			if user := app.Store.User(); user != nil {
				report.User = user.Name
			}

			if err := c.print(cmd, report, func(w *textWriter) {
				w.row("Backend:", report.BaseURL)
				w.row("User:", report.User)
				w.row("Modules:", report.Modules)
				w.row("Taken:", report.Taken)
				w.row("Reserved:", report.Reserved)
				for _, msg := range report.Errors {
					w.row("Error:", msg)
				}
			}); err != nil {
				return err
			}

			return loadErr
		},
	}
}
