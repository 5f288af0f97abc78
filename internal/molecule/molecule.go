package molecule

import (
	"fmt"
	"math"
)

// Bond joins two atoms by their 0-based position in Molecule.Atoms.
type Bond struct {
	From, To int
	Order    BondOrder
}

// Other returns the atom at the far end of the bond from atom.
func (b Bond) Other(atom int) int {
	if b.From == atom {
		return b.To
	}
	return b.From
}

type Molecule struct {
	Name  string
	Atoms []Atom
	Bonds []Bond
}

// AddAtom appends a copy of a and returns its index.
func (m *Molecule) AddAtom(a *Atom) int {
	m.Atoms = append(m.Atoms, *a)
	return len(m.Atoms) - 1
}

// AddBond appends a bond between two existing atoms.
func (m *Molecule) AddBond(from, to int, order BondOrder) error {
	n := len(m.Atoms)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("bond %d-%d: atom index out of range, %d atoms", from, to, n)
	}
	m.Bonds = append(m.Bonds, Bond{From: from, To: to, Order: order})
	return nil
}

// BondsOf returns the indices into m.Bonds of every bond touching atom.
func (m *Molecule) BondsOf(atom int) []int {
	var ret []int
	for i, b := range m.Bonds {
		if b.From == atom || b.To == atom {
			ret = append(ret, i)
		}
	}
	return ret
}

// Degree is the number of explicit bonds on atom.
func (m *Molecule) Degree(atom int) int {
	return len(m.BondsOf(atom))
}

func (m *Molecule) MinX() float64 {
	min := math.MaxFloat64
	for _, a := range m.Atoms {
		if a.X < min {
			min = a.X
		}
	}
	return min
}

func (m *Molecule) MinY() float64 {
	min := math.MaxFloat64
	for _, a := range m.Atoms {
		if a.Y < min {
			min = a.Y
		}
	}
	return min
}

func (m *Molecule) MaxX() float64 {
	max := -math.MaxFloat64
	for _, a := range m.Atoms {
		if a.X > max {
			max = a.X
		}
	}
	return max
}

func (m *Molecule) MaxY() float64 {
	max := -math.MaxFloat64
	for _, a := range m.Atoms {
		if a.Y > max {
			max = a.Y
		}
	}
	return max
}

func (m *Molecule) RangeX() float64 {
	return m.MaxX() - m.MinX()
}

func (m *Molecule) RangeY() float64 {
	return m.MaxY() - m.MinY()
}

// AverageBondLength is the mean 2D bond length, 0 for a molecule without bonds.
func (m *Molecule) AverageBondLength() float64 {
	if len(m.Bonds) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range m.Bonds {
		a1 := m.Atoms[b.From]
		a2 := m.Atoms[b.To]
		total += math.Hypot(a1.X-a2.X, a1.Y-a2.Y)
	}
	return total / float64(len(m.Bonds))
}
