package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	pv "github.com/n0h4rt/pvclient"
)

// cli holds the state shared by the subcommands of one invocation.
type cli struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "pvctl",
		Short:         "Query and edit element reservations on a PV backend",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			c.setupLogger(cmd)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./pvctl.yaml or <user config dir>/pvctl/pvctl.yaml)")
	flags.String("base-url", "", "origin of the backend, e.g. https://pv.example.org")
	flags.String("session", "", "session cookie issued by the login page")
	flags.StringP("output", "o", outputText, "output format: text, json or yaml")
	flags.Bool("debug", false, "log every request")
	flags.String("log-file", "", "also write logs to this file")

	root.AddCommand(newStatusCmd(c))
	root.AddCommand(newModulesCmd(c))
	root.AddCommand(newElementsCmd(c))
	root.AddCommand(newCheckCmd(c))
	root.AddCommand(newResolveCmd(c))
	root.AddCommand(newReserveCmd(c))
	root.AddCommand(newRenameCmd(c))
	root.AddCommand(newReleaseCmd(c))
	root.AddCommand(newWhoamiCmd(c))
	root.AddCommand(newPasswdCmd(c))
	root.AddCommand(newUsersCmd(c))
	root.AddCommand(newConfigCmd(c))
	root.AddCommand(newVersionCmd())

	return root
}

// setupLogger writes human readable logs to stderr and, when configured, to a rotated log file.
func (c *cli) setupLogger(cmd *cobra.Command) {
	level := zerolog.InfoLevel
	if c.v.GetBool(cfgKeyDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.DateTime,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		NoColor: true,
	}

	if path := c.v.GetString(cfgKeyLogFile); path != "" {
		file := &lumberjack.Logger{
			Filename:  path,
			MaxAge:    7,
			LocalTime: true,
		}
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
		return
	}

	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}

// config returns the client configuration resolved from flags, environment and config file.
func (c *cli) config() *pv.Config {
	return &pv.Config{
		BaseURL: c.v.GetString(cfgKeyBaseURL),
		Session: c.v.GetString(cfgKeySession),
		Debug:   c.v.GetBool(cfgKeyDebug),
	}
}

// app builds an initialized application. Loaders are not started.
func (c *cli) app(options ...pv.Option) (*pv.Application, error) {
	config := c.config()
	if config.BaseURL == "" {
		return nil, fmt.Errorf("no base url: set --base-url, PVCTL_BASE_URL or base_url in the config file")
	}

	app := pv.New(config, options...)
	if err := app.Initialize(); err != nil {
		return nil, err
	}

	return app, nil
}
