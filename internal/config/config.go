// Package config defines all configuration structures for BioRxn-Tools.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"

	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
)

// ChemConfig holds molecule parsing and rendering tunables shared by the
// reaction model and the CLI.
type ChemConfig struct {
	// CanonicalForm requests canonical rendering from the molecule oracle.
	CanonicalForm bool `mapstructure:"canonical_form"`

	// IncludeStereochemistry keeps stereo markers in rendered molecules.
	IncludeStereochemistry bool `mapstructure:"include_stereochemistry"`

	// Sanitize validates molecules during parsing; disabling it accepts any
	// non-empty molecule text.
	Sanitize bool `mapstructure:"sanitize"`
}

// RenderOptions converts the chem section into oracle render options.
func (c ChemConfig) RenderOptions() molecule.RenderOptions {
	return molecule.RenderOptions{
		CanonicalForm:          c.CanonicalForm,
		IncludeStereochemistry: c.IncludeStereochemistry,
	}
}

// PreprocessConfig holds the reaction-preprocessing pipeline parameters.
type PreprocessConfig struct {
	// MinAtomCount drops product molecules with fewer heavy atoms.
	MinAtomCount int `mapstructure:"min_atom_count"`

	// MaxProducts drops reactions with more product molecules than this.
	MaxProducts int `mapstructure:"max_products"`

	// BiDirectional additionally emits the reverse of every reaction.
	BiDirectional bool `mapstructure:"bi_directional"`

	// SplitProducts splits multi-product reactions into one reaction per
	// product.
	SplitProducts bool `mapstructure:"split_products"`

	// RemovePatterns lists substructure patterns; matching molecules are
	// removed from the products (cofactor scrubbing).
	RemovePatterns []string `mapstructure:"remove_patterns"`

	// RemoveMolecules lists molecule SMILES removed from the products by
	// canonical-string match.
	RemoveMolecules []string `mapstructure:"remove_molecules"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "console"
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}

// Config is the root configuration structure for the engine and its CLI.
type Config struct {
	Chem       ChemConfig       `mapstructure:"chem"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Log        LogConfig        `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Preprocess.MinAtomCount < 0 {
		return fmt.Errorf("config: preprocess.min_atom_count %d must not be negative", c.Preprocess.MinAtomCount)
	}
	if c.Preprocess.MaxProducts < 1 {
		return fmt.Errorf("config: preprocess.max_products %d must be at least 1", c.Preprocess.MaxProducts)
	}

	return nil
}
