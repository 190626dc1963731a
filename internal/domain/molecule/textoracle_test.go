package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

func TestTextOracle_ParseAndRender(t *testing.T) {
	o := NewTextOracle()
	h, err := o.Parse("N[C@@H](C)C(=O)O", true)
	require.NoError(t, err)
	assert.Equal(t, "N[C@@H](C)C(=O)O", o.Render(h, DefaultRenderOptions()))
}

func TestTextOracle_ParseRejectsEmpty(t *testing.T) {
	o := NewTextOracle()
	_, err := o.Parse("   ", true)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidSMILES))
}

func TestTextOracle_ParseRejectsBadCharset(t *testing.T) {
	o := NewTextOracle()
	_, err := o.Parse("C!C", true)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidSMILES))
}

func TestTextOracle_ParseRejectsUnbalancedBrackets(t *testing.T) {
	o := NewTextOracle()
	for _, bad := range []string{"C(C", "C)C", "C[nH", "C]C", "C(]C"} {
		_, err := o.Parse(bad, true)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTextOracle_SanitizeDisabledAcceptsAnything(t *testing.T) {
	o := NewTextOracle()
	h, err := o.Parse("C(C", false)
	require.NoError(t, err)
	assert.Equal(t, "C(C", o.Render(h, DefaultRenderOptions()))
}

func TestTextOracle_RenderStripsStereo(t *testing.T) {
	o := NewTextOracle()
	h, err := o.Parse("N[C@@H](C)/C=C\\O", true)
	require.NoError(t, err)
	got := o.Render(h, RenderOptions{CanonicalForm: true, IncludeStereochemistry: false})
	assert.Equal(t, "N[CH](C)C=CO", got)
}

func TestTextOracle_RenderNilHandle(t *testing.T) {
	o := NewTextOracle()
	assert.Equal(t, "", o.Render(nil, DefaultRenderOptions()))
}

func TestTextOracle_Match(t *testing.T) {
	o := NewTextOracle()
	h, err := o.Parse("NCCc1ccccc1", true)
	require.NoError(t, err)

	p, err := o.ParsePattern("c1ccccc1")
	require.NoError(t, err)
	assert.True(t, o.Match(h, p))

	q, err := o.ParsePattern("S")
	require.NoError(t, err)
	assert.False(t, o.Match(h, q))
	assert.False(t, o.Match(nil, p))
}

func TestTextOracle_HeavyAtomCount(t *testing.T) {
	o := NewTextOracle()

	tests := []struct {
		smiles string
		want   int
	}{
		{"C", 1},
		{"CCO", 3},
		{"c1ccccc1", 6},
		{"N[C@@H](C)C(=O)O", 6},
		{"[nH]", 1},
		{"[2H]O[2H]", 1}, // deuterium is still hydrogen
		{"ClBr", 2},
	}
	for _, tt := range tests {
		h, err := o.Parse(tt.smiles, true)
		require.NoError(t, err)
		assert.Equal(t, tt.want, o.HeavyAtomCount(h), "smiles %q", tt.smiles)
	}
}
