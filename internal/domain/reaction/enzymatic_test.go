package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

const fdopaRxn = "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1.1.28>>NCCc1c[nH]c2ccc(F)cc12"

func mustNewEnzymatic(t *testing.T, smiles string, opts ...Option) *EnzymaticReaction {
	t.Helper()
	er, err := NewEnzymatic(molecule.NewTextOracle(), smiles, opts...)
	require.NoError(t, err)
	return er
}

func TestNewEnzymatic_Constructor(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn)
	assert.Equal(t, []string{"4", "1", "1", "28"}, er.EC.Levels())
	assert.Equal(t, DefaultSource, er.Source)
	assert.Equal(t, fdopaRxn, er.String())
}

func TestNewEnzymatic_EmptyEC(t *testing.T) {
	er := mustNewEnzymatic(t, "CC>>CO")
	assert.True(t, er.EC.IsEmpty())
	// An empty EC renders with no embedded delimiter.
	assert.Equal(t, "CC>>CO", er.String())
}

func TestNewEnzymatic_TooManyLevels(t *testing.T) {
	_, err := NewEnzymatic(molecule.NewTextOracle(), "CC|1.2.3.4.5>>CO")
	assert.True(t, errors.IsCode(err, errors.CodeECDepth))
}

func TestNewEnzymatic_SourceTag(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn, WithSource("brenda"))
	assert.Equal(t, "brenda", er.Source)
}

func TestEnzymaticString_RendersSortedWithoutMutating(t *testing.T) {
	er := mustNewEnzymatic(t, "O.C|1.2>>N")
	// Render re-sorts alphabetically by canonical string...
	assert.Equal(t, "C.O|1.2>>N", er.String())
	// ...but the mutable group order is untouched.
	assert.Equal(t, []string{"O", "C"}, er.ReactantsAsSmiles())
	// Two renders of an unsorted-but-equal-content reaction are identical.
	assert.Equal(t, er.String(), er.String())
}

func TestToString_ECDepths(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn)

	expected := map[int]string{
		0: "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O>>NCCc1c[nH]c2ccc(F)cc12",
		1: "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4>>NCCc1c[nH]c2ccc(F)cc12",
		2: "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1>>NCCc1c[nH]c2ccc(F)cc12",
		3: "N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|4.1.1>>NCCc1c[nH]c2ccc(F)cc12",
		4: fdopaRxn,
	}
	for depth, want := range expected {
		got, err := er.ToString(depth)
		require.NoError(t, err)
		assert.Equal(t, want, got, "depth %d", depth)
	}
}

func TestGetEC(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn)
	assert.Equal(t, "4", er.GetEC(1))
	assert.Equal(t, "4.1", er.GetEC(2))
	assert.Equal(t, "4.1.1", er.GetEC(3))
	assert.Equal(t, "4.1.1.28", er.GetEC(4))
}

func TestGetEC_EmptyEC(t *testing.T) {
	er := mustNewEnzymatic(t, "CC>>CO")
	assert.Equal(t, "", er.GetEC(MaxECDepth))
}

func TestReverse(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn)
	rev, err := er.Reverse()
	require.NoError(t, err)

	got, err := rev.ToString(MaxECDepth)
	require.NoError(t, err)
	assert.Equal(t,
		"NCCc1c[nH]c2ccc(F)cc12|4.1.1.28>>N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O",
		got)
	assert.Equal(t, er.Source, rev.Source)
}

func TestReverse_DropsAgents(t *testing.T) {
	// Reversal is defined only over the two-sided exchange: agents vanish.
	er := mustNewEnzymatic(t, "C|1.2>O>N")
	rev, err := er.Reverse()
	require.NoError(t, err)
	assert.Empty(t, rev.AgentsAsSmiles())
	assert.Equal(t, "N|1.2>>C", rev.String())
}

func TestFromSmartsAndEC_EqualsDirectParse(t *testing.T) {
	direct := mustNewEnzymatic(t, fdopaRxn)
	factory, err := FromSmartsAndEC(
		molecule.NewTextOracle(),
		"N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O>>NCCc1c[nH]c2ccc(F)cc12",
		"4.1.1.28",
		DefaultSource,
	)
	require.NoError(t, err)
	assert.True(t, direct.Equal(factory))
}

func TestFromSmartsAndEC_RequiresArrow(t *testing.T) {
	_, err := FromSmartsAndEC(molecule.NewTextOracle(), "CC>CO", "1.1", "x")
	assert.True(t, errors.IsCode(err, errors.CodeReactionFormat))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("NCCc1c[nH]c2ccc(F)cc12|4.1.1.28>>N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O"))
	// No EC delimiter.
	assert.False(t, IsValid("N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O>>NCCc1c[nH]c2ccc(F)cc12"))
	// Empty EC field immediately before the arrow.
	assert.False(t, IsValid("N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O|>>NCCc1c[nH]c2ccc(F)cc12"))
	// Single '>' separator.
	assert.False(t, IsValid("N[C@@H](Cc1c[nH]c2ccc(F)cc12)C(=O)O>NCCc1c[nH]c2ccc(F)cc12"))
	// Three or more '>' separators.
	assert.False(t, IsValid("C|1.1>>O>>N"))
}

func TestEnzymaticEqual_ExcludesSource(t *testing.T) {
	a := mustNewEnzymatic(t, fdopaRxn, WithSource("brenda"))
	b := mustNewEnzymatic(t, fdopaRxn, WithSource("rhea"))
	assert.True(t, a.Equal(b))
}

func TestEnzymaticEqual_RequiresSameEC(t *testing.T) {
	a := mustNewEnzymatic(t, "CC|1.2>>CO")
	b := mustNewEnzymatic(t, "CC|1.3>>CO")
	c := mustNewEnzymatic(t, "CC|1.2.3>>CO")
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestHash_DerivedFromCanonicalRendering(t *testing.T) {
	a := mustNewEnzymatic(t, fdopaRxn, WithSource("brenda"))
	b := mustNewEnzymatic(t, fdopaRxn, WithSource("rhea"))
	assert.Equal(t, a.Hash(), b.Hash())

	// Order differences are absorbed because rendering re-sorts.
	c := mustNewEnzymatic(t, "O.C|1.2>>N")
	d := mustNewEnzymatic(t, "C.O|1.2>>N")
	assert.Equal(t, c.Hash(), d.Hash())

	e := mustNewEnzymatic(t, "C.O|1.3>>N")
	assert.NotEqual(t, c.Hash(), e.Hash())
}

func TestCheckedEqual_RejectsMixedTypes(t *testing.T) {
	er := mustNewEnzymatic(t, fdopaRxn)
	r := mustNew(t, "CC>>CO")

	_, err := CheckedEqual(er, r)
	assert.True(t, errors.IsCode(err, errors.CodeEqualityType))

	_, err = CheckedEqual(er, "not a reaction")
	assert.True(t, errors.IsCode(err, errors.CodeEqualityType))

	ok, err := CheckedEqual(er, mustNewEnzymatic(t, fdopaRxn))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewEnzymatic_DefaultRemoveDuplicates(t *testing.T) {
	// The enzymatic constructor dedups raw substrings by default.
	er := mustNewEnzymatic(t, "O.O.C|1.2>>C")
	assert.Equal(t, []string{"O", "C"}, er.ReactantsAsSmiles())

	kept := mustNewEnzymatic(t, "O.O.C|1.2>>C", WithRemoveDuplicates(false))
	assert.Equal(t, []string{"O", "O", "C"}, kept.ReactantsAsSmiles())
}

func TestParseEC(t *testing.T) {
	ec, err := ParseEC("4.1.1.28")
	require.NoError(t, err)
	assert.Equal(t, 4, ec.Depth())
	assert.Equal(t, "4.1.1.28", ec.String())
	assert.Equal(t, "4.1", ec.Prefix(2))
	assert.Equal(t, "4.1.1.28", ec.Prefix(9))
	assert.Equal(t, "", ec.Truncate(0).String())
	assert.Equal(t, "4.1.1", ec.Truncate(3).String())

	empty, err := ParseEC("  ")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	trimmed, err := ParseEC(" 4 . 1 ")
	require.NoError(t, err)
	assert.Equal(t, "4.1", trimmed.String())

	_, err = ParseEC("1.2.3.4.5")
	assert.True(t, errors.IsCode(err, errors.CodeECDepth))
}
