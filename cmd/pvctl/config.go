package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "pvctl"
	configFileType = "yaml"
	envPrefix      = "PVCTL"

	cfgKeyBaseURL = "base_url"
	cfgKeySession = "session"
	cfgKeyOutput  = "output"
	cfgKeyDebug   = "debug"
	cfgKeyLogFile = "log_file"
)

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"base-url": cfgKeyBaseURL,
	"session":  cfgKeySession,
	"output":   cfgKeyOutput,
	"debug":    cfgKeyDebug,
	"log-file": cfgKeyLogFile,
}

// loadConfig resolves the settings with the precedence flag > PVCTL_* environment > config file > default.
// A missing default config file is not an error; a missing --config file is.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	v := c.v
	v.SetDefault(cfgKeyOutput, outputText)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if c.configFile != "" {
		v.SetConfigFile(c.configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configFileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && c.configFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// effectiveConfig is the resolved configuration as printed by `pvctl config`.
type effectiveConfig struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Session string `json:"session,omitempty" yaml:"session,omitempty"`
	Output  string `json:"output" yaml:"output"`
	Debug   bool   `json:"debug" yaml:"debug"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

func newConfigCmd(c *cli) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig{
				File:    c.v.ConfigFileUsed(),
				BaseURL: c.v.GetString(cfgKeyBaseURL),
				Session: c.v.GetString(cfgKeySession),
				Output:  c.v.GetString(cfgKeyOutput),
				Debug:   c.v.GetBool(cfgKeyDebug),
				LogFile: c.v.GetString(cfgKeyLogFile),
			}
			if config.Session != "" && !reveal {
				config.Session = "********"
			}

			return c.print(cmd, config, func(w *textWriter) {
				data, _ := yaml.Marshal(config)
				w.raw(string(data))
			})
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the session cookie instead of a mask")

	return cmd
}
