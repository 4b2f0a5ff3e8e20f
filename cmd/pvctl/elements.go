package main

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	pv "github.com/n0h4rt/pvclient"
	"github.com/n0h4rt/pvclient/models"
)

// elementRow is one element as printed by the element commands.
type elementRow struct {
	MID         string   `json:"mid" yaml:"mid"`
	State       string   `json:"state" yaml:"state"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

func newElementRow(element models.Element) elementRow {
	return elementRow{
		MID:   element.MID,
		State: element.State().String(),
		Name:  element.Name,
	}
}

func printElements(c *cli, cmd *cobra.Command, rows []elementRow) error {
	return c.print(cmd, rows, func(w *textWriter) {
		w.row("MID", "STATE", "NAME")
		for _, row := range rows {
			w.row(row.MID, row.State, row.Name)
		}
	})
}

// loadElements returns a store filled from `GET elements`.
func loadElements(ctx context.Context, c *cli) (*pv.Store, *pv.API, error) {
	app, err := c.app()
	if err != nil {
		return nil, nil, err
	}

	if err := pv.LoadElements(ctx, app.API, app.Store); err != nil {
		return nil, nil, err
	}

	return app.Store, app.API, nil
}

func newElementsCmd(c *cli) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List taken and reserved elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadElements(cmd.Context(), c)
			if err != nil {
				return err
			}

			var mids []string
			if all {
				mids = models.AllMIDs()
			} else {
				db := store.Elements()
				seen := map[string]bool{}
				for mid := range db.Taken {
					seen[mid] = true
				}
				for _, mid := range db.Reserved {
					seen[mid] = true
				}
				for mid := range seen {
					mids = append(mids, mid)
				}
				sort.Strings(mids)
			}

			rows := make([]elementRow, 0, len(mids))
			for _, mid := range mids {
				rows = append(rows, newElementRow(store.Resolve(mid)))
			}

			return printElements(c, cmd, rows)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every valid element, including available ones")

	return cmd
}

func newResolveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <mid>...",
		Short: "Show the owner of elements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadElements(cmd.Context(), c)
			if err != nil {
				return err
			}

			rows := make([]elementRow, 0, len(args))
			for _, mid := range args {
				rows = append(rows, newElementRow(store.Resolve(mid)))
			}

			return printElements(c, cmd, rows)
		},
	}
}

func newCheckCmd(c *cli) *cobra.Command {
	var suggest int

	cmd := &cobra.Command{
		Use:   "check <mid>...",
		Short: "Check whether elements are available and suggest alternatives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadElements(cmd.Context(), c)
			if err != nil {
				return err
			}

			rows := make([]elementRow, 0, len(args))
			for _, mid := range args {
				if !models.IsValidMID(mid) {
					rows = append(rows, elementRow{MID: mid, State: "invalid", Suggestions: store.Suggest(mid, suggest)})
					continue
				}

				row := newElementRow(store.Resolve(mid))
				if !store.IsAvailable(mid) {
					row.Suggestions = store.Suggest(mid, suggest)
				}
				rows = append(rows, row)
			}

			return c.print(cmd, rows, func(w *textWriter) {
				w.row("MID", "STATE", "NAME", "SUGGESTIONS")
				for _, row := range rows {
					w.row(row.MID, row.State, row.Name, joinOrDash(row.Suggestions))
				}
			})
		},
	}

	cmd.Flags().IntVarP(&suggest, "suggest", "n", pv.SUGGEST_DEFAULT, "number of alternatives for unavailable elements")

	return cmd
}

// mutate runs a reservation change and prints the resulting state of mid.
func mutate(c *cli, cmd *cobra.Command, mid string, change func(ctx context.Context, api *pv.API) (models.ElementsDB, error)) error {
	app, err := c.app()
	if err != nil {
		return err
	}

	db, err := change(cmd.Context(), app.API)
	if err != nil {
		var statusErr *pv.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == pv.StatusUnauthorized {
			return errors.Join(err, errors.New("a logged-in session is required: set --session"))
		}
		return err
	}

	app.Store.SetElements(db)

	return printElements(c, cmd, []elementRow{newElementRow(app.Store.Resolve(mid))})
}

func newReserveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <mid> <name>",
		Short: "Reserve an element under a display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(c, cmd, args[0], func(ctx context.Context, api *pv.API) (models.ElementsDB, error) {
				return api.ReserveElement(ctx, args[0], args[1])
			})
		},
	}
}

func newRenameCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <mid> <name>",
		Short: "Change the display name of a reserved element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(c, cmd, args[0], func(ctx context.Context, api *pv.API) (models.ElementsDB, error) {
				return api.RenameElement(ctx, args[0], args[1])
			})
		},
	}
}

func newReleaseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "release <mid>",
		Short: "Delete the reservation of an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(c, cmd, args[0], func(ctx context.Context, api *pv.API) (models.ElementsDB, error) {
				return api.ReleaseElement(ctx, args[0])
			})
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
