package molecule

import "strings"

// BondOrder is a bit set of acceptable bond orders. A concrete molecule bond
// carries exactly one bit; a query bond may carry several.
type BondOrder uint8

const (
	SingleBond BondOrder = 1 << iota
	DoubleBond
	TripleBond
	AromaticBond
)

// AnyBond matches every order a query can ask for.
const AnyBond = SingleBond | DoubleBond | TripleBond | AromaticBond

// Has reports whether every bit of o is set in b.
func (b BondOrder) Has(o BondOrder) bool {
	return o != 0 && b&o == o
}

// Multiplicity is the number of bonding electron pairs counted when
// computing implicit hydrogens. Aromatic and multi-order values count as one.
func (b BondOrder) Multiplicity() int {
	switch b {
	case DoubleBond:
		return 2
	case TripleBond:
		return 3
	}
	return 1
}

func (b BondOrder) String() string {
	if b == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []struct {
		bit  BondOrder
		name string
	}{
		{SingleBond, "single"},
		{DoubleBond, "double"},
		{TripleBond, "triple"},
		{AromaticBond, "aromatic"},
	} {
		if b&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
