package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build makes a molecule from element symbols and single bonds.
func build(t *testing.T, elements []string, bonds [][2]int) *Molecule {
	t.Helper()
	var f Factory
	m := &Molecule{}
	for _, e := range elements {
		a, err := f.NewAtom(e, 0, 0, false)
		require.NoError(t, err)
		m.AddAtom(a)
	}
	for _, b := range bonds {
		require.NoError(t, m.AddBond(b[0], b[1], SingleBond))
	}
	return m
}

func TestBondOrderString(t *testing.T) {
	assert.Equal(t, "single", SingleBond.String())
	assert.Equal(t, "single|aromatic", (SingleBond | AromaticBond).String())
	assert.Equal(t, "single|double|triple|aromatic", AnyBond.String())
	assert.Equal(t, "none", BondOrder(0).String())
}

func TestBondOrderHas(t *testing.T) {
	q := DoubleBond | AromaticBond
	assert.True(t, q.Has(DoubleBond))
	assert.True(t, q.Has(AromaticBond))
	assert.True(t, q.Has(q))
	assert.False(t, q.Has(SingleBond))
	assert.False(t, q.Has(0))
}

func TestBondOrderMultiplicity(t *testing.T) {
	assert.Equal(t, 1, SingleBond.Multiplicity())
	assert.Equal(t, 2, DoubleBond.Multiplicity())
	assert.Equal(t, 3, TripleBond.Multiplicity())
	assert.Equal(t, 1, AromaticBond.Multiplicity())
}

func TestFactory(t *testing.T) {
	var f Factory
	a, err := f.NewAtom("Br", 2, -1, false)
	require.NoError(t, err)
	assert.Equal(t, 35, a.AtomicNumber)
	assert.Equal(t, 2, a.MassDifference)
	assert.Equal(t, -1, a.Charge)

	d, err := f.NewAtom("D", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, d.AtomicNumber)

	for _, s := range []string{"A", "Q", "L", "*", "R#", "c", ""} {
		_, err := f.NewAtom(s, 0, 0, false)
		assert.ErrorIs(t, err, ErrUnknownElement, s)
	}
}

func TestAddBondChecksIndices(t *testing.T) {
	m := build(t, []string{"C", "O"}, nil)
	assert.Error(t, m.AddBond(0, 2, SingleBond))
	assert.Error(t, m.AddBond(-1, 0, SingleBond))
	require.NoError(t, m.AddBond(0, 1, DoubleBond))
	assert.Equal(t, []int{0}, m.BondsOf(1))
	assert.Equal(t, 1, m.Bonds[0].Other(0))
	assert.Equal(t, 0, m.Bonds[0].Other(1))
}

func TestBounds(t *testing.T) {
	m := &Molecule{Atoms: []Atom{{X: -1, Y: 2}, {X: 3, Y: -2}}}
	require.NoError(t, m.AddBond(0, 1, SingleBond))
	assert.Equal(t, 4.0, m.RangeX())
	assert.Equal(t, 4.0, m.RangeY())
	assert.InDelta(t, 5.6568, m.AverageBondLength(), 1e-3)
	assert.Zero(t, (&Molecule{}).AverageBondLength())
}

func TestHydrogenate(t *testing.T) {
	// acetaldehyde CH3-CH=O
	m := build(t, []string{"C", "C", "O"}, [][2]int{{0, 1}})
	require.NoError(t, m.AddBond(1, 2, DoubleBond))
	Hydrogenate(m)
	assert.Equal(t, 3, m.Atoms[0].HCount)
	assert.Equal(t, 1, m.Atoms[1].HCount)
	assert.Equal(t, 0, m.Atoms[2].HCount)
}

func TestHydrogenateCharged(t *testing.T) {
	m := build(t, []string{"N", "O"}, nil)
	m.Atoms[0].Charge = 1
	m.Atoms[1].Charge = -1
	Hydrogenate(m)
	assert.Equal(t, 4, m.Atoms[0].HCount)
	assert.Equal(t, 1, m.Atoms[1].HCount)
}

func TestChiralCarbons(t *testing.T) {
	// butan-2-ol: the carbon carrying OH is chiral
	m := build(t, []string{"C", "C", "C", "C", "O"}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {1, 4}})
	Hydrogenate(m)
	assert.Equal(t, []int{1}, ChiralCarbons(m))
}

func TestChiralCarbonsSymmetric(t *testing.T) {
	// propan-2-ol has two identical methyl groups
	m := build(t, []string{"C", "C", "C", "O"}, [][2]int{{0, 1}, {1, 2}, {1, 3}})
	Hydrogenate(m)
	assert.Empty(t, ChiralCarbons(m))
}

func TestChiralCarbonExplicitHydrogen(t *testing.T) {
	// CHFClBr with the hydrogen drawn explicitly
	m := build(t, []string{"C", "H", "F", "Cl", "Br"}, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})
	Hydrogenate(m)
	assert.True(t, IsChiralCarbon(m, 0))
	assert.False(t, IsChiralCarbon(m, 2))
}
