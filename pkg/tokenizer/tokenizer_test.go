package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

const (
	rxnSmiles    = "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1.1.28>>NCCc1c[nH]c2ccc(F)cc12"
	rxnTokenized = "N [C@@H] ( C c 1 c [nH] c 2 c c c ( F ) c c 1 2 ) C ( = O ) O [v4] [u1] [t1] [q28] >> N C C c 1 c [nH] c 2 c c c ( F ) c c 1 2"

	rxnSmilesPartial    = "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1>>NCCc1c[nH]c2ccc(F)cc12"
	rxnTokenizedPartial = "N [C@@H] ( C c 1 c [nH] c 2 c c c ( F ) c c 1 2 ) C ( = O ) O [v4] [u1] >> N C C c 1 c [nH] c 2 c c c ( F ) c c 1 2"
)

func TestTokenizeSmiles(t *testing.T) {
	assert.Equal(t,
		"C C ( C O ) = N >> C C ( C = O ) N",
		TokenizeSmiles("CC(CO)=N>>CC(C=O)N"))
}

func TestTokenizeSmiles_TwoLetterAtoms(t *testing.T) {
	// 'Br' and 'Cl' must win over single-letter fallbacks 'B' and 'C'.
	assert.Equal(t, "Br C Cl B", TokenizeSmiles("BrCClB"))
}

func TestTokenizeSmiles_RingClosures(t *testing.T) {
	assert.Equal(t, "C %12 C", TokenizeSmiles("C%12C"))
	assert.Equal(t, "C %(123) C", TokenizeSmiles("C%(123)C"))
}

func TestTokenizeEnzymaticReactionSmiles(t *testing.T) {
	got, err := TokenizeEnzymaticReactionSmiles(rxnSmiles, false)
	require.NoError(t, err)
	assert.Equal(t, rxnTokenized, got)
}

func TestTokenizeEnzymaticReactionSmiles_PartialEC(t *testing.T) {
	got, err := TokenizeEnzymaticReactionSmiles(rxnSmilesPartial, false)
	require.NoError(t, err)
	assert.Equal(t, rxnTokenizedPartial, got)
}

func TestTokenizeEnzymaticReactionSmiles_KeepPipe(t *testing.T) {
	got, err := TokenizeEnzymaticReactionSmiles("CO|1.2>>OC", true)
	require.NoError(t, err)
	assert.Equal(t, "C O | [v1] [u2] >> O C", got)
}

func TestTokenizeEnzymaticReactionSmiles_NoEC(t *testing.T) {
	got, err := TokenizeEnzymaticReactionSmiles("CC(CO)=N>>CC(C=O)N", false)
	require.NoError(t, err)
	assert.Equal(t, "C C ( C O ) = N >> C C ( C = O ) N", got)
}

func TestTokenizeEnzymaticReactionSmiles_TooManyLevels(t *testing.T) {
	_, err := TokenizeEnzymaticReactionSmiles("CO|1.2.3.4.5>>OC", false)
	assert.True(t, errors.IsCode(err, errors.CodeECDepth))
}

func TestTokenizeEnzymaticReactionSmiles_MissingArrow(t *testing.T) {
	_, err := TokenizeEnzymaticReactionSmiles("CO|1.2>OC>", false)
	assert.True(t, errors.IsCode(err, errors.CodeTokenization))
}

func TestDetokenizeEnzymaticReactionSmiles(t *testing.T) {
	assert.Equal(t, rxnSmiles, DetokenizeEnzymaticReactionSmiles(rxnTokenized))
}

func TestDetokenizeEnzymaticReactionSmiles_PartialEC(t *testing.T) {
	assert.Equal(t, rxnSmilesPartial, DetokenizeEnzymaticReactionSmiles(rxnTokenizedPartial))
}

func TestDetokenize_InsertsMissingPipe(t *testing.T) {
	// Level tags without a pipe marker: the pipe is reinserted before them.
	assert.Equal(t, "CO|1.2>>OC", DetokenizeEnzymaticReactionSmiles("C O [v1] [u2] >> O C"))
}

func TestDetokenize_DropsOrphanPipe(t *testing.T) {
	// A pipe without level tags is treated as no EC.
	assert.Equal(t, "CO>>OC", DetokenizeEnzymaticReactionSmiles("C O | >> O C"))
}

func TestDetokenize_NoECPassthrough(t *testing.T) {
	assert.Equal(t, "CC>>CO", DetokenizeEnzymaticReactionSmiles("C C >> C O"))
}

func TestDetokenize_MalformedYieldsEmpty(t *testing.T) {
	// Pipe present but no '>>' after it.
	assert.Equal(t, "", DetokenizeEnzymaticReactionSmiles("C O | [v1] C O"))
}

func TestTokenizeDetokenize_RoundTrip(t *testing.T) {
	for _, s := range []string{
		rxnSmiles,
		rxnSmilesPartial,
		"O.CO|1.2.3.4>>C(=O)O",
		"CC(CO)=N>>CC(C=O)N",
	} {
		tok, err := TokenizeEnzymaticReactionSmiles(s, false)
		require.NoError(t, err)
		assert.Equal(t, s, DetokenizeEnzymaticReactionSmiles(tok), "round trip of %q", s)
	}
}
