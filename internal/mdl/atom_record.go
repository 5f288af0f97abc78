package mdl

import (
	"fmt"

	"github.com/h1w0xxx/molrec/internal/molecule"
)

// AtomDialect identifies which historical layout an atom line follows.
type AtomDialect int

const (
	// AtomDialectShort covers every line without the H0 block: up to 13
	// tokens, ending with atom map, inversion and exact change.
	AtomDialectShort AtomDialect = iota
	// AtomDialectLong is the full 16-token line, which carries the H0
	// designator and two unused columns before the trailing three fields.
	AtomDialectLong
)

func (d AtomDialect) String() string {
	if d == AtomDialectLong {
		return "long"
	}
	return "short"
}

func atomDialectFor(words int) AtomDialect {
	if words == 16 {
		return AtomDialectLong
	}
	return AtomDialectShort
}

// AtomFactory creates atoms for AtomRecord.CreateAtom.
type AtomFactory interface {
	NewAtom(symbol string, massDiff, charge int, radical bool) (*molecule.Atom, error)
}

// AtomRecord is one parsed line of a V2000 atom block.
type AtomRecord struct {
	X, Y, Z float64
	Symbol  string

	MassDifference int
	ChargeCode     int
	StereoParity   int
	HydrogenCount  int
	StereoCareBox  int
	Valence        int
	H0Designator   int
	AtomMap        int
	Inversion      int
	ExactChange    int

	Dialect AtomDialect
}

type intField struct {
	name string
	dst  *int
}

func (r *AtomRecord) leadingFields() []intField {
	return []intField{
		{"mass difference", &r.MassDifference},
		{"charge", &r.ChargeCode},
		{"stereo parity", &r.StereoParity},
		{"hydrogen count", &r.HydrogenCount},
		{"stereo care", &r.StereoCareBox},
		{"valence", &r.Valence},
	}
}

func (r *AtomRecord) trailingFields() []intField {
	return []intField{
		{"atom map", &r.AtomMap},
		{"inversion", &r.Inversion},
		{"exact change", &r.ExactChange},
	}
}

// readFields consumes one token per field. It stops without error at the
// end of the line and reports whether every field was present.
func readFields(t *tokenizer, line string, fields []intField) (bool, error) {
	for _, f := range fields {
		token, ok := t.next()
		if !ok {
			return false, nil
		}
		v, ok := parseInt(token)
		if !ok {
			return false, fieldErr(ErrBadNumericField, f.name, token, line)
		}
		*f.dst = v
	}
	return true, nil
}

// Build parses line into r. Every field is reset first, so a record may be
// reused across lines of different widths. A line that ends early is not an
// error: fields past the last token keep their zero value. On failure r is
// left zeroed.
func (r *AtomRecord) Build(line string) error {
	if err := r.build(line); err != nil {
		*r = AtomRecord{}
		return err
	}
	return nil
}

func (r *AtomRecord) build(line string) error {
	if len(line) < 34 {
		return recordErr(fmt.Errorf("%w: atom record must have at least 34 characters", ErrMalformedRecord), line)
	}
	nw := countWords(line)
	if nw < 6 {
		return recordErr(fmt.Errorf("%w: atom record must have at least 6 tokens", ErrMalformedRecord), line)
	}

	*r = AtomRecord{Dialect: atomDialectFor(nw)}

	for _, c := range []struct {
		name     string
		from, to int
		dst      *float64
	}{
		{"x", 0, 10, &r.X},
		{"y", 10, 20, &r.Y},
		{"z", 20, 30, &r.Z},
	} {
		token := column(line, c.from, c.to)
		v, ok := parseFloat(token)
		if !ok {
			return fieldErr(ErrBadCoordinate, c.name, token, line)
		}
		*c.dst = v
	}

	t := newTokenizer(line, 30)
	symbol, ok := t.next()
	if !ok {
		return recordErr(fmt.Errorf("%w: missing atomic symbol", ErrMalformedRecord), line)
	}
	r.Symbol = symbol

	complete, err := readFields(t, line, r.leadingFields())
	if err != nil || !complete {
		return err
	}

	if r.Dialect == AtomDialectLong {
		complete, err = readFields(t, line, []intField{{"H0 designator", &r.H0Designator}})
		if err != nil || !complete {
			return err
		}
		// two unused columns
		t.next()
		t.next()
	}

	_, err = readFields(t, line, r.trailingFields())
	return err
}

// CreateAtom turns a successfully built record into an atom. It panics if
// Build has not succeeded on r.
func (r *AtomRecord) CreateAtom(f AtomFactory) (*molecule.Atom, error) {
	if r.Symbol == "" {
		panic("mdl: CreateAtom on an atom record with no symbol")
	}

	charge, err := FormalCharge(r.ChargeCode)
	if err != nil {
		return nil, fmt.Errorf("atom %s: %w", r.Symbol, err)
	}
	radical := false
	if charge == radicalCharge {
		radical = true
		charge = 0
	}

	a, err := f.NewAtom(r.Symbol, r.MassDifference, charge, radical)
	if err != nil {
		return nil, fmt.Errorf("atom %s: %w", r.Symbol, err)
	}
	a.SetXYZ(r.X, r.Y, r.Z)
	return a, nil
}

// ParseAtom is shorthand for building a fresh AtomRecord from line.
func ParseAtom(line string) (AtomRecord, error) {
	var r AtomRecord
	err := r.Build(line)
	return r, err
}
