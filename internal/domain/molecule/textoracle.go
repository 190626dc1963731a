package molecule

import (
	"regexp"
	"strings"

	"github.com/turtacn/BioRxn-Tools/pkg/errors"
	"github.com/turtacn/BioRxn-Tools/pkg/tokenizer"
)

// validSMILESChars defines the allowed character set for SMILES notation.
// This is a lexical check; full structural validation requires a chemistry
// backend.
var validSMILESChars = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#/\\%.*:~$?]+$`)

// textMol is the TextOracle handle: the validated molecule text itself.
type textMol struct {
	smiles string
}

// textPattern is the TextOracle compiled pattern.
type textPattern struct {
	smarts string
}

// TextOracle is a pure-Go lexical Oracle.  It validates and transcodes
// molecule text without building a structure graph: rendering returns the
// stored text (with optional stereo stripping), substructure matching is
// textual containment, and atom counting is token-based.  A production
// deployment substitutes an RDKit-backed Oracle; TextOracle keeps the engine
// and its tests free of cgo.
type TextOracle struct{}

// NewTextOracle returns the built-in lexical Oracle.
func NewTextOracle() *TextOracle {
	return &TextOracle{}
}

var _ Oracle = (*TextOracle)(nil)

// Parse validates the molecule text and wraps it in a Handle.  With sanitize
// disabled only the empty check runs, mirroring chemistry backends that skip
// sanitization on request.
func (o *TextOracle) Parse(text string, sanitize bool) (Handle, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.CodeInvalidSMILES, "molecule string cannot be empty")
	}

	if sanitize {
		if !validSMILESChars.MatchString(text) {
			return nil, errors.New(errors.CodeInvalidSMILES, "molecule contains invalid characters").
				WithDetail("smiles=" + text)
		}
		if err := validateBrackets(text); err != nil {
			return nil, err
		}
	}

	return &textMol{smiles: text}, nil
}

// Render returns the stored molecule text under the given options.  The
// lexical oracle treats its input as already canonical; CanonicalForm is a
// no-op here but honored by structure-aware implementations.
func (o *TextOracle) Render(h Handle, opts RenderOptions) string {
	tm, ok := h.(*textMol)
	if !ok || tm == nil {
		return ""
	}
	if opts.IncludeStereochemistry {
		return tm.smiles
	}
	return stripStereo(tm.smiles)
}

// ParsePattern compiles a substructure pattern.  TextOracle patterns are
// plain substrings of molecule text.
func (o *TextOracle) ParsePattern(text string) (Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.CodeInvalidPattern, "pattern cannot be empty")
	}
	return &textPattern{smarts: text}, nil
}

// Match reports textual containment of the pattern in the molecule.
func (o *TextOracle) Match(h Handle, p Pattern) bool {
	tm, ok := h.(*textMol)
	if !ok || tm == nil {
		return false
	}
	tp, ok := p.(*textPattern)
	if !ok || tp == nil {
		return false
	}
	return strings.Contains(tm.smiles, tp.smarts)
}

// HeavyAtomCount counts non-hydrogen atom tokens in the molecule text.
func (o *TextOracle) HeavyAtomCount(h Handle) int {
	tm, ok := h.(*textMol)
	if !ok || tm == nil {
		return 0
	}

	count := 0
	for _, tok := range strings.Fields(tokenizer.TokenizeSmiles(tm.smiles)) {
		if isHeavyAtomToken(tok) {
			count++
		}
	}
	return count
}

// organicSubsetAtoms are the atom tokens the tokenizer emits outside brackets.
var organicSubsetAtoms = map[string]bool{
	"B": true, "Br": true, "C": true, "Cl": true, "N": true, "O": true,
	"S": true, "P": true, "F": true, "I": true,
	"b": true, "c": true, "n": true, "o": true, "s": true, "p": true,
}

// isHeavyAtomToken reports whether a single SMILES token denotes a
// non-hydrogen atom.
func isHeavyAtomToken(tok string) bool {
	if organicSubsetAtoms[tok] {
		return true
	}
	if len(tok) < 3 || tok[0] != '[' || tok[len(tok)-1] != ']' {
		return false
	}
	// Bracket atom: skip the isotope digits, then read the element symbol.
	inner := strings.TrimLeft(tok[1:len(tok)-1], "0123456789")
	if inner == "" {
		return false
	}
	if inner[0] != 'H' {
		return true
	}
	// 'H' followed by a lowercase letter is a two-letter element (He, Hg, ...).
	return len(inner) > 1 && inner[1] >= 'a' && inner[1] <= 'z'
}

// validateBrackets checks that all parentheses and square brackets in the
// molecule text are balanced.
func validateBrackets(smiles string) error {
	var stack []rune
	closers := map[rune]rune{
		')': '(',
		']': '[',
	}

	for _, ch := range smiles {
		switch ch {
		case '(', '[':
			stack = append(stack, ch)
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closers[ch] {
				return errors.New(errors.CodeInvalidSMILES, "unmatched brackets in molecule").
					WithDetail("smiles=" + smiles)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return errors.New(errors.CodeInvalidSMILES, "unclosed brackets in molecule").
			WithDetail("smiles=" + smiles)
	}

	return nil
}

// stripStereo removes tetrahedral (@, @@) and cis/trans (/, \) markers.
func stripStereo(smiles string) string {
	s := strings.ReplaceAll(smiles, "@@", "")
	s = strings.ReplaceAll(s, "@", "")
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "\\", "")
	return s
}
