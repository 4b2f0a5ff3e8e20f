package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pv "github.com/n0h4rt/pvclient"
	"github.com/n0h4rt/pvclient/models"
)

// whoamiReport is the identity behind the session cookie.
type whoamiReport struct {
	LoggedIn bool   `json:"logged_in" yaml:"logged_in"`
	UID      int    `json:"uid,omitempty" yaml:"uid,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Admin    bool   `json:"admin" yaml:"admin"`
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the user behind the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			if err := pv.LoadUser(cmd.Context(), app.API, app.Store); err != nil {
				return err
			}

			var report whoamiReport
			if user := app.Store.User(); user != nil {
				report = whoamiReport{LoggedIn: user.LoggedIn, UID: user.UID, Name: user.Name, Admin: user.IsAdmin()}
			}

			return c.print(cmd, report, func(w *textWriter) {
				if !report.LoggedIn {
					w.row("anonymous")
					return
				}
				if report.Admin {
					w.row(report.Name, report.UID, "admin")
					return
				}
				w.row(report.Name, report.UID)
			})
		},
	}
}

func newPasswdCmd(c *cli) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the logged-in user",
		Long:  "Change the password of the logged-in user. The current session is invalidated on success.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			if err := app.API.ChangePassword(cmd.Context(), password); err != nil {
				return err
			}

			return c.print(cmd, map[string]bool{"changed": true}, func(w *textWriter) {
				w.row("Password changed, log in again to get a new session.")
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "the new password (12 to 64 characters)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// userRow is one account.
type userRow struct {
	UID  int    `json:"uid" yaml:"uid"`
	Name string `json:"name" yaml:"name"`
}

func printUsers(c *cli, cmd *cobra.Command, users []models.User) error {
	rows := make([]userRow, 0, len(users))
	for _, user := range users {
		rows = append(rows, userRow{UID: user.UID, Name: user.Name})
	}

	return c.print(cmd, rows, func(w *textWriter) {
		w.row("UID", "NAME")
		for _, row := range rows {
			w.row(row.UID, row.Name)
		}
	})
}

// adminAPI returns the API for the user management commands.
func adminAPI(c *cli) (*pv.API, error) {
	app, err := c.app()
	if err != nil {
		return nil, err
	}
	return app.API, nil
}

// explainUnauthorized adds a hint to 401 answers of the user management endpoints.
func explainUnauthorized(err error) error {
	var statusErr *pv.StatusError
	if errors.As(err, &statusErr) && statusErr.Status == pv.StatusUnauthorized {
		return errors.Join(err, errors.New("user management requires the admin session"))
	}
	return err
}

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin session only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := adminAPI(c)
			if err != nil {
				return err
			}

			users, err := api.Users(cmd.Context())
			if err != nil {
				return explainUnauthorized(err)
			}
			return printUsers(c, cmd, users)
		},
	})

	var addPassword string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := adminAPI(c)
			if err != nil {
				return err
			}

			users, err := api.AddUser(cmd.Context(), args[0], addPassword)
			if err != nil {
				return explainUnauthorized(err)
			}
			return printUsers(c, cmd, users)
		},
	}
	add.Flags().StringVar(&addPassword, "password", "", "the password of the account (12 to 64 characters)")
	_ = add.MarkFlagRequired("password")
	cmd.AddCommand(add)

	var setPassword string
	passwd := &cobra.Command{
		Use:   "passwd <uid>",
		Short: "Replace the password of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := parseUID(args[0])
			if err != nil {
				return err
			}

			api, err := adminAPI(c)
			if err != nil {
				return err
			}

			users, err := api.SetUserPassword(cmd.Context(), uid, setPassword)
			if err != nil {
				return explainUnauthorized(err)
			}
			return printUsers(c, cmd, users)
		},
	}
	passwd.Flags().StringVar(&setPassword, "password", "", "the new password (12 to 64 characters)")
	_ = passwd.MarkFlagRequired("password")
	cmd.AddCommand(passwd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <uid>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := parseUID(args[0])
			if err != nil {
				return err
			}

			api, err := adminAPI(c)
			if err != nil {
				return err
			}

			users, err := api.DeleteUser(cmd.Context(), uid)
			if err != nil {
				return explainUnauthorized(err)
			}
			return printUsers(c, cmd, users)
		},
	})

	return cmd
}

func parseUID(s string) (int, error) {
	uid, err := strconv.Atoi(s)
	if err != nil || uid < 0 {
		return 0, fmt.Errorf("invalid uid %q", s)
	}
	return uid, nil
}
