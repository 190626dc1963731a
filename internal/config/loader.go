package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "BIORXN"

// newViper builds a pre-configured Viper instance with the engine's standard
// settings: YAML file type, BIORXN_ env prefix, automatic env binding, and a
// key replacer that maps "." → "_" so that nested keys like "log.level"
// resolve to "BIORXN_LOG_LEVEL".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Every key needs a default so that Unmarshal sees env-only overrides.
	// The default-true booleans in particular must be set here rather than in
	// ApplyDefaults, which cannot tell an explicit false from an unset field.
	v.SetDefault("chem.canonical_form", true)
	v.SetDefault("chem.include_stereochemistry", true)
	v.SetDefault("chem.sanitize", true)

	v.SetDefault("preprocess.min_atom_count", DefaultMinAtomCount)
	v.SetDefault("preprocess.max_products", DefaultMaxProducts)
	v.SetDefault("preprocess.bi_directional", false)
	v.SetDefault("preprocess.split_products", false)
	v.SetDefault("preprocess.remove_patterns", []string{})
	v.SetDefault("preprocess.remove_molecules", []string{})

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output", DefaultLogOutput)
	v.SetDefault("log.enable_caller", false)
	v.SetDefault("log.enable_stacktrace", false)

	return v
}

// Load reads the YAML file at configPath, merges any BIORXN_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from BIORXN_* environment variables,
// with no config file required.
//
// Environment variable naming convention:
//
//	BIORXN_<SECTION>_<FIELD>   e.g.  BIORXN_LOG_LEVEL, BIORXN_PREPROCESS_MAX_PRODUCTS
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as the log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// A change that fails to parse or validate is skipped so the
			// application never observes a broken configuration.
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
