package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	pv "github.com/n0h4rt/pvclient"
)

// moduleRow is one reserved module.
type moduleRow struct {
	Module string `json:"module" yaml:"module"`
	Name   string `json:"name" yaml:"name"`
}

func newModulesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "modules [module]",
		Short: "List reserved modules, or show the owner of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			if err := pv.LoadReservedModules(cmd.Context(), app.API, app.Store); err != nil {
				return err
			}

			if len(args) == 1 {
				name, ok := app.Store.ReservedModule(args[0])
				if !ok {
					return fmt.Errorf("module %q is not reserved", args[0])
				}
				row := moduleRow{Module: args[0], Name: name}
				return c.print(cmd, row, func(w *textWriter) {
					w.row(row.Module, row.Name)
				})
			}

			modules := app.Store.ReservedModules()
			rows := make([]moduleRow, 0, len(modules))
			for module, name := range modules {
				rows = append(rows, moduleRow{Module: module, Name: name})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].Module < rows[j].Module })

			return c.print(cmd, rows, func(w *textWriter) {
				w.row("MODULE", "NAME")
				for _, row := range rows {
					w.row(row.Module, row.Name)
				}
			})
		},
	}
}
