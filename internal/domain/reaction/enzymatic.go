package reaction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

// DefaultSource is the provenance tag assigned when none is supplied.
const DefaultSource = "unknown"

// separatorRegex splits an enzymatic reaction SMILES on the group separators
// and the EC delimiter in one pass.  For the input shape
// reactants|EC>agents>products the second segment is the EC field; the EC
// delimiter must appear immediately after the reactant group and before the
// first '>', otherwise the EC capture is empty or wrong.
var separatorRegex = regexp.MustCompile(`>|\|`)

// EnzymaticReaction is a Reaction annotated with an enzyme classification
// number.  Reactions containing an enzyme are represented as reaction SMILES
// using a '|' to separate the precursors from the EC number:
//
//	N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1.1.28>>NCCc1c[nH]c2ccc(F)cc12
//
// Source is a free-form provenance tag excluded from equality and hashing.
type EnzymaticReaction struct {
	Reaction

	EC     ECNumber
	Source string
}

// NewEnzymatic parses an enzymatic reaction SMILES.  Duplicate removal
// defaults to true here (unlike New).  The EC segment is extracted by the
// two-stage split described on separatorRegex, textually removed, and the
// remainder is handed to the base constructor.
func NewEnzymatic(oracle molecule.Oracle, enzymaticSmiles string, opts ...Option) (*EnzymaticReaction, error) {
	cfg := config{
		removeDuplicates: true,
		sanitize:         true,
		renderOpts:       molecule.DefaultRenderOptions(),
		source:           DefaultSource,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	vals := separatorRegex.Split(enzymaticSmiles, -1)
	ecField := ""
	if len(vals) > 1 {
		ecField = vals[1]
	}

	ec, err := ParseEC(ecField)
	if err != nil {
		return nil, err
	}

	base, err := newWithConfig(oracle, strings.ReplaceAll(enzymaticSmiles, "|"+ecField, ""), cfg)
	if err != nil {
		return nil, err
	}

	return &EnzymaticReaction{
		Reaction: *base,
		EC:       ec,
		Source:   cfg.source,
	}, nil
}

// FromSmartsAndEC creates an EnzymaticReaction from a two-sided reaction
// SMILES (reactants>>products, no agents) and a separate EC string.  The EC
// delimiter is inserted immediately before the '>>' and the result is handed
// to NewEnzymatic.
func FromSmartsAndEC(oracle molecule.Oracle, reactionSmiles, ec, source string) (*EnzymaticReaction, error) {
	split := strings.SplitN(reactionSmiles, ">>", 2)
	if len(split) < 2 {
		return nil, errors.FormatError("reaction SMILES must contain '>>'").
			WithDetail("input=" + reactionSmiles)
	}
	return NewEnzymatic(oracle, split[0]+"|"+ec+">>"+split[1], WithSource(source))
}

// IsValid is a purely syntactic pre-check of an enzymatic reaction SMILES
// (e.g. O.CO|1.2.3.4>>C(=O)O): the EC delimiter must be present, exactly two
// '>' separators must exist, and the EC field before the arrow must be
// non-empty.  It does not guarantee that the molecules parse.
func IsValid(enzymaticSmiles string) bool {
	if !strings.Contains(enzymaticSmiles, "|") {
		return false
	}
	if strings.Count(enzymaticSmiles, ">") != 2 {
		return false
	}
	if strings.Contains(enzymaticSmiles, "|>>") {
		return false
	}
	return true
}

// String renders the reaction as reactants|EC>agents>products.  Each group is
// re-sorted alphabetically by canonical string at render time; this re-sort
// is a property of rendering and does not mutate the groups (Sort does).
// All whitespace is stripped from the result.
func (er *EnzymaticReaction) String() string {
	g := er.groups()
	parts := make([]string, 3)
	for i := range g {
		smiles := er.groupSmiles(g[i])
		sort.Strings(smiles)
		parts[i] = strings.Join(smiles, ".")
	}

	if !er.EC.IsEmpty() {
		parts[0] += "|" + er.EC.String()
	}

	return strings.ReplaceAll(strings.Join(parts, ">"), " ", "")
}

// ToString renders the reaction with the EC truncated to depth levels
// (top-down, default precision is MaxECDepth; depth 0 yields a reaction with
// no EC delimiter).  The instance's own render is re-parsed through the
// constructor to normalize formatting before truncation.
func (er *EnzymaticReaction) ToString(depth int) (string, error) {
	cpy, err := NewEnzymatic(er.oracle, er.String())
	if err != nil {
		return "", err
	}
	cpy.EC = cpy.EC.Truncate(depth)
	return strings.TrimSpace(cpy.String()), nil
}

// GetEC returns the dot-joined first depth EC levels, or "" when the EC is
// empty.
func (er *EnzymaticReaction) GetEC(depth int) string {
	return er.EC.Prefix(depth)
}

// Reverse returns a new reaction built from products>>reactants with the
// same EC and source.  Agents are dropped: reversal is defined only over the
// two-sided exchange.  Because canonical ordering is re-derived on each
// render, Reverse is not guaranteed to be its own inverse bit-for-bit.
func (er *EnzymaticReaction) Reverse() (*EnzymaticReaction, error) {
	return FromSmartsAndEC(
		er.oracle,
		strings.Join(er.ProductsAsSmiles(), ".")+">>"+strings.Join(er.ReactantsAsSmiles(), "."),
		er.GetEC(MaxECDepth),
		er.Source,
	)
}

// Equal compares the base reaction structure and the EC sequence.  Source is
// excluded from equality.
func (er *EnzymaticReaction) Equal(other *EnzymaticReaction) bool {
	if other == nil {
		return false
	}
	return er.Reaction.Equal(&other.Reaction) && er.EC.Equal(other.EC)
}

// Hash derives a digest from the canonical string rendering: two instances
// differing only in Source hash equal, while differing molecules or EC hash
// apart.  Molecule-order differences are absorbed because String re-sorts.
func (er *EnzymaticReaction) Hash() uint64 {
	return xxh3.HashString(er.String())
}

// CheckedEqual compares two reaction values, rejecting mixed-type comparisons
// with a CodeEqualityType error instead of reporting them unequal.
func CheckedEqual(a, b interface{}) (bool, error) {
	switch x := a.(type) {
	case *EnzymaticReaction:
		y, ok := b.(*EnzymaticReaction)
		if !ok {
			return false, errors.New(errors.CodeEqualityType,
				"an enzymatic reaction can only be compared with another enzymatic reaction")
		}
		return x.Equal(y), nil
	case *Reaction:
		y, ok := b.(*Reaction)
		if !ok {
			return false, errors.New(errors.CodeEqualityType,
				"a reaction can only be compared with another reaction")
		}
		return x.Equal(y), nil
	}
	return false, errors.New(errors.CodeEqualityType, "unsupported comparison operands")
}
