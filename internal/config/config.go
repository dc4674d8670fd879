// Package config wraps viper into the typed getters the diagnostics
// driver and CLI demos consume. It governs process/driver configuration
// only (server port, debug logging, default strategy path); it never
// touches Platform JSON or Strategy JSON, which the compiler core
// decodes itself.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "QCORE"

// Config wraps a configured *viper.Viper instance.
type Config struct {
	v *viper.Viper
}

// Options controls how a Config is loaded.
type Options struct {
	// ConfigFile, if set, is read in addition to the environment. A
	// missing file is not an error; a malformed one is.
	ConfigFile string
}

// defaults applied before the environment/file are layered on top.
func defaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.local_only", false)
	v.SetDefault("strategy", "")
}

// New builds a Config from environment variables (prefix QCORE_, with
// nested keys like "server.port" read as QCORE_SERVER_PORT) and,
// optionally, a config file.
func New(opts Options) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			_, isNotFoundErr := err.(viper.ConfigFileNotFoundError)
			if !isNotFoundErr && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
