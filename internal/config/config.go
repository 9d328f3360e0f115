// Package config holds the command-line configuration and its validation.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// Extension is appended to encrypted files.
const Extension = ".stegecrypt"

// EnvPrefix namespaces the environment variables read by the tool.
const EnvPrefix = "STEGECRYPT"

// Operation names the subcommand a Config is validated for.
type Operation string

// Supported operations.
const (
	OpEncrypt  Operation = "encrypt"
	OpDecrypt  Operation = "decrypt"
	OpEmbed    Operation = "embed"
	OpExtract  Operation = "extract"
	OpHide     Operation = "hide"
	OpReveal   Operation = "reveal"
	OpCapacity Operation = "capacity"
	OpInspect  Operation = "inspect"
)

// Config is the merged result of flags, environment and config file.
type Config struct {
	// Operation being configured, set by the command.
	Op Operation `mapstructure:"-"`

	// Common flags
	Show     bool
	Quiet    bool
	Stats    bool
	Parallel int    `label:"--parallel" validate:"min=1"`
	Suite    string `label:"--suite"    validate:"suite"`

	Delete             bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Paths
	Key    string   `label:"--key"                  validate:"omitempty,keyfile"`
	Inputs []string `label:"--input"                validate:"decryptable,dive,required" mapstructure:"input"`
	Output string   `label:"--output"               validate:"single,pngout,distinct"`
	Image  string   `label:"--image"                validate:"omitempty,carrier"`
	Data   string   `label:"--data"`
}

// NewViper returns a viper instance reading STEGECRYPT_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file named by the "config" key, unmarshals
// all sources into a Config and validates it for op. Positional args are
// appended to the inputs.
func Load(v *viper.Viper, op Operation, args ...string) (*Config, error) {
	if path := v.GetString("config"); path != "" {
		if err := ReadFile(v, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Op = op
	cfg.Inputs = append(cfg.Inputs, args...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadFile merges a JSONC config file into v. Flags and environment
// variables keep precedence over values from the file.
func ReadFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the --config flag
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSONInPlace(data))); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return nil
}

// DefaultOutput returns the output path for input when --output is not set.
func (c *Config) DefaultOutput(input string) string {
	switch c.Op {
	case OpDecrypt:
		return strings.TrimSuffix(input, Extension)
	default:
		return input + Extension
	}
}

// OutputFor returns the output path for input: --output when set, the
// default otherwise.
func (c *Config) OutputFor(input string) string {
	if c.Output != "" {
		return c.Output
	}

	return c.DefaultOutput(input)
}

// Batch reports whether the configuration names several inputs.
func (c *Config) Batch() bool {
	return len(c.Inputs) > 1
}
