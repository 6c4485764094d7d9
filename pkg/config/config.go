package config

import (
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Configuration is the effective run configuration, assembled from defaults,
// an optional YAML config file and command line flags (highest priority).
type Configuration struct {
	DryRun        bool     `koanf:"dry-run"`
	MinSize       uint64   `koanf:"min-size"`
	Separator     string   `koanf:"separator"`
	NoBraceOutput bool     `koanf:"no-brace-output"`
	Filters       []string `koanf:"filter"`
}

// Config is the loaded configuration, set by Load.
var Config *Configuration

const delim = "."

// Load assembles the configuration. configPath may point at a file that does
// not exist; only a file that exists but fails to parse is an error.
func Load(configPath string, flags *pflag.FlagSet) error {
	k := koanf.New(delim)

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dry-run":         false,
		"min-size":        1,
		"separator":       ";",
		"no-brace-output": false,
	}, delim), nil); err != nil {
		return errors.Wrap(err, "load config defaults")
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return errors.Wrapf(err, "load config file %q", configPath)
			}
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, delim, k), nil); err != nil {
			return errors.Wrap(err, "load config flags")
		}
	}

	cfg := &Configuration{}
	if err := k.Unmarshal("", cfg); err != nil {
		return errors.Wrap(err, "unmarshal config")
	}

	// files below one byte can never be worth linking
	if cfg.MinSize < 1 {
		cfg.MinSize = 1
	}

	Config = cfg
	return nil
}
