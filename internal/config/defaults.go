package config

// Default values applied to unset fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stderr"

	DefaultMinAtomCount = 4
	DefaultMaxProducts  = 1
)

// ApplyDefaults fills zero-value fields in cfg with engine defaults.  Boolean
// fields that default to true (chem.canonical_form, chem.sanitize,
// chem.include_stereochemistry) are defaulted by the loader via viper so that
// an explicit false is distinguishable from unset; ApplyDefaults only covers
// the remaining fields for callers that build a Config by hand.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	if cfg.Preprocess.MinAtomCount == 0 {
		cfg.Preprocess.MinAtomCount = DefaultMinAtomCount
	}
	if cfg.Preprocess.MaxProducts == 0 {
		cfg.Preprocess.MaxProducts = DefaultMaxProducts
	}
}

// DefaultConfig returns a fully-populated Config with all engine defaults,
// including the default-true chem flags.  It is the configuration the CLI
// runs with when no config file is supplied.
func DefaultConfig() *Config {
	cfg := &Config{
		Chem: ChemConfig{
			CanonicalForm:          true,
			IncludeStereochemistry: true,
			Sanitize:               true,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
