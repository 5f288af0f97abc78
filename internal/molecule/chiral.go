package molecule

import "math"

// ChiralCarbons returns the 0-based indices of every chiral carbon.
// Call Hydrogenate first so implicit hydrogens are counted.
func ChiralCarbons(mol *Molecule) []int {
	var result []int
	for i := range mol.Atoms {
		if IsChiralCarbon(mol, i) {
			result = append(result, i)
		}
	}
	return result
}

// isTerminalHydrogen reports whether atom is an explicit H with a single bond.
func isTerminalHydrogen(mol *Molecule, atom int) bool {
	return mol.Atoms[atom].Element == "H" && mol.Degree(atom) == 1
}

// IsChiralCarbon determines if the atom at index is a carbon carrying four
// pairwise distinct substituents.
func IsChiralCarbon(mol *Molecule, index int) bool {
	if mol.Atoms[index].Element != "C" {
		return false
	}
	hcnt := mol.Atoms[index].HCount
	var heavy []int
	for _, bi := range mol.BondsOf(index) {
		if isTerminalHydrogen(mol, mol.Bonds[bi].Other(index)) {
			hcnt++
		} else {
			heavy = append(heavy, bi)
		}
	}

	// Check 4+0 or 3+1 substitution pattern
	switch {
	case len(heavy) == 4 && hcnt == 0:
	case len(heavy) == 3 && hcnt == 1:
	default:
		return false
	}
	for i := 0; i < len(heavy); i++ {
		for j := i + 1; j < len(heavy); j++ {
			if CompareChain(mol, index, heavy[i], heavy[j]) {
				return false
			}
		}
	}
	return true
}

// CompareChain reports whether the two substituent chains leaving center
// through bonds b1 and b2 (indices into mol.Bonds) are indistinguishable.
func CompareChain(mol *Molecule, center, b1, b2 int) bool {
	ttl := int(3 + math.Sqrt(float64(len(mol.Atoms))))
	return compareChainRec(mol, center, center, b1, b2, ttl)
}

func compareChainRec(mol *Molecule, atom1, atom2, chain1, chain2, ttl int) bool {
	if ttl < 0 {
		return true
	}
	if chain1 < 0 || chain2 < 0 || chain1 >= len(mol.Bonds) || chain2 >= len(mol.Bonds) {
		return true
	}
	bond1 := mol.Bonds[chain1]
	bond2 := mol.Bonds[chain2]
	if bond1.Order != bond2.Order {
		return false
	}
	n1 := bond1.Other(atom1)
	n2 := bond2.Other(atom2)
	a1 := mol.Atoms[n1]
	a2 := mol.Atoms[n2]
	if a1.Element != a2.Element || a1.Charge != a2.Charge || a1.MassDifference != a2.MassDifference {
		return false
	}

	h1, subs1 := substituents(mol, n1, chain1)
	h2, subs2 := substituents(mol, n2, chain2)
	h1 += a1.HCount
	h2 += a2.HCount
	if h1 != h2 || len(subs1) != len(subs2) {
		return false
	}
	if len(subs1) == 0 {
		return true
	}
	ttl--
	used := make([]bool, len(subs2))
	for _, id1 := range subs1 {
		matched := false
		for k, id2 := range subs2 {
			if used[k] {
				continue
			}
			if compareChainRec(mol, n1, n2, id1, id2, ttl) {
				used[k] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// substituents splits the bonds of atom, other than via, into terminal
// hydrogens (counted) and heavy-atom bonds (returned).
func substituents(mol *Molecule, atom, via int) (int, []int) {
	h := 0
	var subs []int
	for _, bi := range mol.BondsOf(atom) {
		if bi == via {
			continue
		}
		if isTerminalHydrogen(mol, mol.Bonds[bi].Other(atom)) {
			h++
		} else {
			subs = append(subs, bi)
		}
	}
	return h, subs
}
