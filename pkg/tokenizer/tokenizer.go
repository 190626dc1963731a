// Package tokenizer converts reaction SMILES to and from the space-joined
// token streams consumed by downstream sequence models.  It is a pure string
// transcoder: no molecule parsing or chemistry validation happens here.
//
// Enzymatic reaction SMILES have the form precursors|EC>>products.  The EC
// number is carried in the token stream as per-level bracket tokens spliced
// immediately before the '>>' token, e.g. EC 4.1.1.28 becomes
// "[v4] [u1] [t1] [q28]".
package tokenizer

import (
	"regexp"
	"strings"

	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

// smilesPattern is the ordered-alternation grammar for SMILES tokens.
// Alternation order matters: bracket atoms and two-letter symbols must be
// tried before their single-character fallbacks, and '>>' before '>'.
const smilesPattern = `%\([0-9]{3}\)|\[[^\]]+\]|Br?|Cl?|N|O|S|P|F|I|b|c|n|o|s|p|\||\(|\)|\.|=|#|-|\+|\\|/|:|~|@|\?|>>?|\*|\$|%[0-9]{2}|[0-9]`

var (
	smilesRegex = regexp.MustCompile(smilesPattern)
	splitRegex  = regexp.MustCompile(`>|\|`)
)

// ecLevelTags are the per-level letters used to encode EC classes as bracket
// tokens: level 1 → [vN], level 2 → [uN], level 3 → [tN], level 4 → [qN].
var ecLevelTags = [4]string{"v", "u", "t", "q"}

// Arrow is the reaction arrow token separating precursors from products.
const Arrow = ">>"

// Pipe is the token separating precursors from the EC number.
const Pipe = "|"

// TokenizeSmiles tokenizes a SMILES molecule or reaction and joins the tokens
// with single spaces.  EC numbers receive no special handling here.
//
// Example: "CC(CO)=N>>CC(C=O)N" → "C C ( C O ) = N >> C C ( C = O ) N".
func TokenizeSmiles(smiles string) string {
	return strings.Join(smilesRegex.FindAllString(smiles, -1), " ")
}

// TokenizeEnzymaticReactionSmiles tokenizes an enzymatic reaction SMILES of
// the form precursors|EC>>products.  The EC levels are emitted as bracket
// tokens immediately before the '>>' token.  When keepPipe is true and the
// EC is non-empty, a literal '|' token is inserted before the first EC token.
//
// The EC segment must appear directly after the precursors and before the
// first '>'; inputs without a pipe are tokenized with no EC tokens.
func TokenizeEnzymaticReactionSmiles(rxn string, keepPipe bool) (string, error) {
	parts := splitRegex.Split(rxn, -1)
	ecField := ""
	if len(parts) > 1 {
		ecField = parts[1]
	}
	ec := strings.Split(ecField, ".")

	rxn = strings.ReplaceAll(rxn, Pipe+ecField, "")
	tokens := smilesRegex.FindAllString(rxn, -1)

	if ec[0] == "" {
		return strings.Join(tokens, " "), nil
	}

	if len(ec) > len(ecLevelTags) {
		return "", errors.New(errors.CodeECDepth, "EC number exceeds four levels").
			WithDetail("ec=" + ecField)
	}

	arrow := -1
	for i, tok := range tokens {
		if tok == Arrow {
			arrow = i
			break
		}
	}
	if arrow < 0 {
		return "", errors.New(errors.CodeTokenization, "reaction has no '>>' token").
			WithDetail("rxn=" + rxn)
	}

	ecTokens := make([]string, 0, len(ec)+1)
	if keepPipe {
		ecTokens = append(ecTokens, Pipe)
	}
	for i, level := range ec {
		ecTokens = append(ecTokens, "["+ecLevelTags[i]+level+"]")
	}

	spliced := make([]string, 0, len(tokens)+len(ecTokens))
	spliced = append(spliced, tokens[:arrow]...)
	spliced = append(spliced, ecTokens...)
	spliced = append(spliced, tokens[arrow:]...)

	return strings.Join(spliced, " "), nil
}

// DetokenizeEnzymaticReactionSmiles reverses TokenizeEnzymaticReactionSmiles,
// reconstructing the precursors|EC>>products form from a token stream.
//
// Reconciliation rules, applied in order: a level tag without a pipe gets a
// pipe inserted before it; a pipe without level tags is dropped; a stream
// with neither is returned unchanged.  Malformed streams (a pipe without an
// arrow, or nothing after the pipe) yield the empty string — callers must
// treat empty output as failure.
func DetokenizeEnzymaticReactionSmiles(rxn string) string {
	rxn = strings.ReplaceAll(rxn, " ", "")

	if strings.Contains(rxn, "[v") && !strings.Contains(rxn, Pipe) {
		i := strings.Index(rxn, "[v")
		rxn = rxn[:i] + Pipe + rxn[i:]
	}

	if !strings.Contains(rxn, "[v") && strings.Contains(rxn, Pipe) {
		rxn = strings.ReplaceAll(rxn, Pipe, "")
	}

	if !strings.Contains(rxn, Pipe) {
		return rxn
	}

	precursorSplit := strings.Split(rxn, Pipe)
	if len(precursorSplit) < 2 {
		return ""
	}

	reactionSplit := strings.Split(precursorSplit[1], Arrow)
	if len(reactionSplit) < 2 {
		return ""
	}

	ec := reactionSplit[0]
	ec = strings.ReplaceAll(ec, "][", ".")
	ec = strings.ReplaceAll(ec, "[v", "")
	ec = strings.ReplaceAll(ec, "u", "")
	ec = strings.ReplaceAll(ec, "t", "")
	ec = strings.ReplaceAll(ec, "q", "")
	ec = strings.ReplaceAll(ec, "]", "")

	return precursorSplit[0] + Pipe + ec + Arrow + reactionSplit[1]
}
