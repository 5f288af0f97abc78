package molecule

import (
	"errors"
	"fmt"
)

// ErrUnknownElement is returned by the factory for symbols outside the
// periodic table, including MDL query atoms such as A, Q, L and *.
var ErrUnknownElement = errors.New("unknown element")

type Atom struct {
	Element        string
	AtomicNumber   int
	X, Y, Z        float64
	MassDifference int
	Charge         int
	Radical        bool
	HCount         int
}

// SetXYZ sets the atom coordinates.
func (a *Atom) SetXYZ(x, y, z float64) {
	a.X, a.Y, a.Z = x, y, z
}

// Factory builds atoms from element symbols. The zero value is ready to use.
type Factory struct{}

// NewAtom returns an atom for symbol with the given isotope shift, formal
// charge and radical flag.
func (Factory) NewAtom(symbol string, massDiff, charge int, radical bool) (*Atom, error) {
	z, ok := atomicNumbers[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	return &Atom{
		Element:        symbol,
		AtomicNumber:   z,
		MassDifference: massDiff,
		Charge:         charge,
		Radical:        radical,
	}, nil
}

var elements = []string{
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(elements)+2)
	for i, s := range elements {
		m[s] = i + 1
	}
	// deuterium and tritium as written in many molfiles
	m["D"] = 1
	m["T"] = 1
	return m
}()
