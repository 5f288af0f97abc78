package mdl

import (
	"fmt"
	"log/slog"

	"github.com/h1w0xxx/molrec/internal/molecule"
)

// BondDialect identifies which historical layout a bond line follows. It is
// derived from the token count, corrected for fused atom-index columns.
type BondDialect int

const (
	// BondDialectMinimal has only the two atoms and the bond type.
	BondDialectMinimal BondDialect = iota
	// BondDialectWithStereo adds the stereo column and nothing else.
	BondDialectWithStereo
	// BondDialectLegacySeven carries one unused column between stereo and
	// topology, which is read and discarded.
	BondDialectLegacySeven
	// BondDialectFull has stereo, topology and reacting center status.
	BondDialectFull
)

func (d BondDialect) String() string {
	switch d {
	case BondDialectMinimal:
		return "minimal"
	case BondDialectWithStereo:
		return "with-stereo"
	case BondDialectLegacySeven:
		return "legacy-seven"
	}
	return "full"
}

func bondDialectFor(words int) BondDialect {
	switch words {
	case 3:
		return BondDialectMinimal
	case 4:
		return BondDialectWithStereo
	case 7:
		return BondDialectLegacySeven
	}
	return BondDialectFull
}

// BondRecord is one parsed line of a V2000 bond block. Atom1 and Atom2 are
// 0-based positions in the atom block.
type BondRecord struct {
	Atom1, Atom2   int
	TypeCode       int
	Stereo         int
	Topology       int
	ReactingCenter int

	Dialect BondDialect
}

// BondParser parses bond lines under a fixed self-bond policy.
type BondParser struct {
	// AllowSelfBonds accepts a bond whose two ends are the same atom,
	// logging a warning instead of failing.
	AllowSelfBonds bool
	Logger         *slog.Logger
}

func (p BondParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Parse decodes one bond line for a molecule with atomCount atoms.
func (p BondParser) Parse(line string, atomCount int) (BondRecord, error) {
	var r BondRecord
	err := r.Build(line, atomCount, p)
	return r, err
}

// atomIndex reads a 1-based atom number from line[from:to] and returns it
// 0-based.
func atomIndex(line string, from, to int, field string, atomCount int) (int, error) {
	token := column(line, from, to)
	n, ok := parseInt(token)
	if !ok {
		return 0, fieldErr(fmt.Errorf("%w: %w", ErrInvalidAtomIndex, ErrBadNumericField), field, token, line)
	}
	if n < 1 || n > atomCount {
		return 0, fieldErr(fmt.Errorf("%w: must be in 1..%d", ErrInvalidAtomIndex, atomCount), field, token, line)
	}
	return n - 1, nil
}

func rangedField(t *tokenizer, line, field string, hi int) (int, bool, error) {
	token, ok := t.next()
	if !ok {
		return 0, false, nil
	}
	v, ok := parseInt(token)
	if !ok || v < 0 || v > hi {
		return 0, true, fieldErr(fmt.Errorf("%w: must be in 0..%d", ErrBadNumericField, hi), field, token, line)
	}
	return v, true, nil
}

// Build parses line into r, resetting every field first. A bond line may
// stop after the bond type or after the stereo column; once topology is
// reached, topology and reacting center status are both required. On
// failure r is left zeroed.
func (r *BondRecord) Build(line string, atomCount int, p BondParser) error {
	if err := r.build(line, atomCount, p); err != nil {
		*r = BondRecord{}
		return err
	}
	return nil
}

func (r *BondRecord) build(line string, atomCount int, p BondParser) error {
	if len(line) < 9 {
		return recordErr(fmt.Errorf("%w: bond record too short", ErrMalformedRecord), line)
	}

	nw := countWords(line)
	// " 59100  1  0  0  0  0": the atom numbers have run together
	if isDigit(line[3]) {
		nw++
	}
	if nw < 3 {
		return recordErr(fmt.Errorf("%w: bond record has too few tokens", ErrMalformedRecord), line)
	}

	*r = BondRecord{Dialect: bondDialectFor(nw)}

	var err error
	if r.Atom1, err = atomIndex(line, 0, 3, "first atom", atomCount); err != nil {
		return err
	}
	if r.Atom2, err = atomIndex(line, 3, 6, "second atom", atomCount); err != nil {
		return err
	}

	if r.Atom1 == r.Atom2 {
		if !p.AllowSelfBonds {
			return fieldErr(ErrSelfBondRejected, "atom", fmt.Sprint(r.Atom1+1), line)
		}
		p.logger().Warn("ignoring self bond", "atom", r.Atom1+1, "record", line)
	}

	token := column(line, 7, 9)
	bt, ok := parseInt(token)
	if !ok {
		return fieldErr(fmt.Errorf("%w: %w", ErrInvalidBondType, ErrBadNumericField), "bond type", token, line)
	}
	if bt < 1 || bt > 8 {
		return fieldErr(ErrInvalidBondType, "bond type", token, line)
	}
	r.TypeCode = bt

	if r.Dialect == BondDialectMinimal || len(line) < 12 {
		return nil
	}

	t := newTokenizer(line, 9)
	stereo, present, err := rangedField(t, line, "bond stereo", 6)
	if err != nil || !present {
		return err
	}
	r.Stereo = stereo

	if r.Dialect == BondDialectWithStereo {
		return nil
	}
	if r.Dialect == BondDialectLegacySeven {
		t.next()
	}

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"bond topology", &r.Topology},
		{"reacting center status", &r.ReactingCenter},
	} {
		v, present, err := rangedField(t, line, f.name, 13)
		if err != nil {
			return err
		}
		if !present {
			return fieldErr(fmt.Errorf("%w: missing field", ErrMalformedRecord), f.name, "", line)
		}
		*f.dst = v
	}
	return nil
}

// BondOrderForMolecule maps the bond type onto the order used when building
// a real molecule. Query-only types 4..8 collapse to a single bond.
func (r BondRecord) BondOrderForMolecule() molecule.BondOrder {
	switch r.TypeCode {
	case 2:
		return molecule.DoubleBond
	case 3:
		return molecule.TripleBond
	}
	return molecule.SingleBond
}

// BondOrderForQuery maps the bond type onto the set of orders a query bond
// matches.
func (r BondRecord) BondOrderForQuery() (molecule.BondOrder, error) {
	switch r.TypeCode {
	case 1:
		return molecule.SingleBond, nil
	case 2:
		return molecule.DoubleBond, nil
	case 3:
		return molecule.TripleBond, nil
	case 4:
		return molecule.AromaticBond, nil
	case 5:
		return molecule.SingleBond | molecule.DoubleBond, nil
	case 6:
		return molecule.SingleBond | molecule.AromaticBond, nil
	case 7:
		return molecule.DoubleBond | molecule.AromaticBond, nil
	case 8:
		return molecule.AnyBond, nil
	}
	return 0, fmt.Errorf("%w %d", ErrUnrecognisedBondType, r.TypeCode)
}
