package molecule

// defaultValence lists the lowest common valence of the organic subset.
var defaultValence = map[string]int{
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"P":  3,
	"S":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

// Hydrogenate fills Atom.HCount with implicit hydrogens for organic-subset
// atoms. Atoms outside the subset keep whatever count they already have.
func Hydrogenate(mol *Molecule) {
	for ai := range mol.Atoms {
		atom := &mol.Atoms[ai]
		v, ok := defaultValence[atom.Element]
		if !ok {
			continue
		}
		totalBond := 0
		for _, bi := range mol.BondsOf(ai) {
			totalBond += mol.Bonds[bi].Order.Multiplicity()
		}
		// N+ and O+ gain a bond, C+ and C- lose one
		switch {
		case atom.Charge > 0 && (atom.Element == "N" || atom.Element == "O" || atom.Element == "P" || atom.Element == "S"):
			v += atom.Charge
		default:
			v -= abs(atom.Charge)
		}
		if atom.Radical {
			v--
		}
		atom.HCount = max(0, v-totalBond)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
