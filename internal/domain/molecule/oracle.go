// Package molecule defines the molecule-engine contract consumed by the
// reaction model, together with a built-in lexical implementation.
//
// The reaction layer never inspects molecular structure itself: parsing,
// canonical rendering, substructure matching, and atom counting are all
// delegated through the Oracle interface so that a cheminformatics backend
// (e.g. an RDKit binding) can be plugged in without touching the engine.
package molecule

// Handle is an opaque reference to one parsed chemical species.  A Handle is
// produced by an Oracle's Parse and is meaningful only to the Oracle that
// produced it.
type Handle interface{}

// Pattern is an opaque compiled substructure pattern, produced by
// ParsePattern and consumed by Match.
type Pattern interface{}

// RenderOptions controls how a Handle is rendered back to text.  The options
// are fixed per Reaction instance at construction and reused for every
// render, sort key, and equality key derivation.
type RenderOptions struct {
	// CanonicalForm requests the oracle's deterministic canonical rendering.
	CanonicalForm bool `mapstructure:"canonical_form" json:"canonical_form"`

	// IncludeStereochemistry keeps stereo markers (@, @@, /, \) in the
	// rendered string.  Disabling it collapses stereoisomers to one form.
	IncludeStereochemistry bool `mapstructure:"include_stereochemistry" json:"include_stereochemistry"`
}

// DefaultRenderOptions returns the engine-wide render defaults: canonical
// form with stereochemistry preserved.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		CanonicalForm:          true,
		IncludeStereochemistry: true,
	}
}

// Oracle is the molecule-engine contract.  Implementations must be safe for
// concurrent use by independent callers; all methods are synchronous and
// stateless per call.
type Oracle interface {
	// Parse converts a single-molecule string into a Handle.  When sanitize
	// is set the input is validated before acceptance; an invalid molecule
	// yields a non-nil error.  Callers that tolerate failed parses (the
	// reaction model does) translate the error into a vacant slot rather
	// than propagating it.
	Parse(text string, sanitize bool) (Handle, error)

	// Render produces the canonical textual form of a Handle under the given
	// options.  Rendering a nil or foreign Handle yields the empty string.
	Render(h Handle, opts RenderOptions) string

	// ParsePattern compiles a substructure pattern for repeated matching.
	ParsePattern(text string) (Pattern, error)

	// Match reports whether the molecule contains at least one occurrence of
	// the pattern.  A nil Handle never matches.
	Match(h Handle, p Pattern) bool

	// HeavyAtomCount reports the number of non-hydrogen atoms.
	HeavyAtomCount(h Handle) int
}
