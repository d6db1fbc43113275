// Package config loads compiler settings.
//
// Settings come from an optional project-local .similc.yaml, overridden
// by SIMLC_* environment variables, overridden in turn by command-line
// flags (the flag layer lives in cmd/similc). The debug level is the
// exception: the -d count is added to the configured level rather than
// replacing it. All getters are nil-safe:
// before Initialize, or when no config file exists, they return the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConfigFileName is the project-local configuration file, searched in the
// working directory.
const ConfigFileName = ".similc.yaml"

// Keys understood by the configuration layer.
const (
	KeyNoColor       = "no-color"
	KeyOutputDir     = "output-dir"
	KeyDebug         = "debug"
	KeyWatchDebounce = "watch-debounce-ms"
)

var v *viper.Viper

// Initialize loads .similc.yaml (when present) and the SIMLC_*
// environment. A missing config file is not an error; a malformed one is.
func Initialize() error {
	nv := viper.New()
	nv.SetConfigName(strings.TrimSuffix(ConfigFileName, ".yaml"))
	nv.SetConfigType("yaml")
	nv.AddConfigPath(".")

	nv.SetEnvPrefix("SIMLC")
	nv.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	nv.AutomaticEnv()

	nv.SetDefault(KeyNoColor, false)
	nv.SetDefault(KeyOutputDir, "")
	nv.SetDefault(KeyDebug, 0)
	nv.SetDefault(KeyWatchDebounce, 200)

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	v = nv
	return nil
}

// GetBool returns the bool value for key, or false before Initialize.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt returns the int value for key, or 0 before Initialize.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetString returns the string value for key, or "" before Initialize.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}
