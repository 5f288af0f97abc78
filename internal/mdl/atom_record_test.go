package mdl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/h1w0xxx/molrec/internal/molecule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomLine lays out an atom line the way V2000 writers do: three 10-wide
// coordinates, the symbol in a 3-wide column, a 2-wide mass difference and
// 3-wide columns after that.
func atomLine(x, y, z float64, symbol string, fields ...int) string {
	s := fmt.Sprintf("%10.4f%10.4f%10.4f %-3s", x, y, z, symbol)
	for i, f := range fields {
		if i == 0 {
			s += fmt.Sprintf("%2d", f)
		} else {
			s += fmt.Sprintf("%3d", f)
		}
	}
	return s
}

func TestAtomLineHelper(t *testing.T) {
	line := atomLine(0, 0, 0, "C", 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, "    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0", line)
	assert.Equal(t, 16, countWords(line))
}

func TestAtomBuildTooShort(t *testing.T) {
	var r AtomRecord
	err := r.Build("    1.0000    2.0000    3.0000 C")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "    1.0000    2.0000    3.0000 C", re.Line)
}

func TestAtomBuildLengthBoundary(t *testing.T) {
	// plenty of tokens, so only the length decides whether the
	// coordinates are looked at
	short := "1 2 3 4 5 6 7 8 9 10 11 12 13 14 "
	require.Len(t, short, 33)
	_, err := ParseAtom(short)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.NotErrorIs(t, err, ErrBadCoordinate)

	exact := "1 2 3 4 5 6 7 8 9 10 11 12 13 14 5"
	require.Len(t, exact, 34)
	_, err = ParseAtom(exact)
	assert.ErrorIs(t, err, ErrBadCoordinate)
	assert.NotErrorIs(t, err, ErrMalformedRecord)

	// six tokens need at least 35 characters when the columns are valid
	minimal := "    1.0000    2.0000    3.000 C 0 0"
	require.Len(t, minimal, 35)
	r, err := ParseAtom(minimal)
	require.NoError(t, err)
	assert.Equal(t, AtomRecord{X: 1, Y: 2, Z: 3, Symbol: "C"}, r)
}

func TestAtomBuildTooFewTokens(t *testing.T) {
	var r AtomRecord
	err := r.Build("    1.0000    2.0000    3.0000 C   0     ")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestAtomBuildMinimal(t *testing.T) {
	line := atomLine(1.5, -2.25, 0.125, "N", 0, 0)
	require.Len(t, line, 39)

	var r AtomRecord
	require.NoError(t, r.Build(line))
	assert.Equal(t, AtomRecord{
		X:       1.5,
		Y:       -2.25,
		Z:       0.125,
		Symbol:  "N",
		Dialect: AtomDialectShort,
	}, r)
}

func TestAtomBuildLongDialect(t *testing.T) {
	line := atomLine(1, 2, 3, "Cl", 1, 3, 2, 1, 1, 4, 1, 0, 0, 7, 1, 2)
	require.Equal(t, 16, countWords(line))

	r, err := ParseAtom(line)
	require.NoError(t, err)
	assert.Equal(t, AtomDialectLong, r.Dialect)
	assert.Equal(t, "Cl", r.Symbol)
	assert.Equal(t, 1, r.MassDifference)
	assert.Equal(t, 3, r.ChargeCode)
	assert.Equal(t, 2, r.StereoParity)
	assert.Equal(t, 1, r.HydrogenCount)
	assert.Equal(t, 1, r.StereoCareBox)
	assert.Equal(t, 4, r.Valence)
	assert.Equal(t, 1, r.H0Designator)
	assert.Equal(t, 7, r.AtomMap)
	assert.Equal(t, 1, r.Inversion)
	assert.Equal(t, 2, r.ExactChange)
}

func TestAtomBuildLongDialectIgnoresUnusedColumns(t *testing.T) {
	// the two unused columns are never parsed as numbers
	line := "    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  1 xx yy  4  0  0"
	require.Equal(t, 16, countWords(line))

	r, err := ParseAtom(line)
	require.NoError(t, err)
	assert.Equal(t, 1, r.H0Designator)
	assert.Equal(t, 4, r.AtomMap)
}

func TestAtomBuildShortVersusLong(t *testing.T) {
	long, err := ParseAtom(atomLine(0, 0, 0, "C", 0, 0, 0, 2, 1, 4, 1, 0, 0, 5, 1, 1))
	require.NoError(t, err)
	short, err := ParseAtom(atomLine(0, 0, 0, "C", 0, 0, 0, 2, 1, 4, 0, 0, 0))
	require.NoError(t, err)
	require.Equal(t, AtomDialectShort, short.Dialect)

	assert.Equal(t, long.HydrogenCount, short.HydrogenCount)
	assert.Equal(t, long.StereoCareBox, short.StereoCareBox)
	assert.Equal(t, long.Valence, short.Valence)

	assert.Zero(t, short.H0Designator)
	assert.Zero(t, short.AtomMap)
	assert.Zero(t, short.Inversion)
	assert.Zero(t, short.ExactChange)

	assert.Equal(t, 1, long.H0Designator)
	assert.Equal(t, 5, long.AtomMap)
	assert.Equal(t, 1, long.Inversion)
	assert.Equal(t, 1, long.ExactChange)
}

func TestAtomBuildShortDialectReadsTrailingFields(t *testing.T) {
	// 13 tokens: no H0 block, the last three columns follow valence directly
	r, err := ParseAtom(atomLine(0, 0, 0, "O", 0, 0, 0, 0, 0, 2, 9, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, AtomDialectShort, r.Dialect)
	assert.Equal(t, 2, r.Valence)
	assert.Zero(t, r.H0Designator)
	assert.Equal(t, 9, r.AtomMap)
	assert.Equal(t, 1, r.Inversion)
}

func TestAtomBuildTruncatedIsSuccess(t *testing.T) {
	tests := []struct {
		name   string
		fields []int
		want   AtomRecord
	}{
		{"stereo parity", []int{1, 5, 2}, AtomRecord{MassDifference: 1, ChargeCode: 5, StereoParity: 2}},
		{"hydrogen count", []int{0, 0, 0, 3}, AtomRecord{HydrogenCount: 3}},
		{"valence", []int{0, 0, 0, 1, 0, 3}, AtomRecord{HydrogenCount: 1, Valence: 3}},
		{"atom map only", []int{0, 0, 0, 0, 0, 0, 6}, AtomRecord{AtomMap: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseAtom(atomLine(0, 0, 0, "S", tt.fields...))
			require.NoError(t, err)
			tt.want.Symbol = "S"
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestAtomBuildBadNumericField(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"charge", "    0.0000    0.0000    0.0000 C   0  x", "charge"},
		{"mass difference", "    0.0000    0.0000    0.0000 C  +x  0", "mass difference"},
		{"valence", "    0.0000    0.0000    0.0000 C   0  0  0  0  0 4a", "valence"},
		{"exact change", "    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0 1.5", "exact change"},
		{"H0", "    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  h  0  0  0  0  0", "H0 designator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r AtomRecord
			err := r.Build(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadNumericField)

			var re *RecordError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.field, re.Field)
			assert.Equal(t, tt.line, re.Line)
			assert.Empty(t, r.Symbol, "failed build leaves the record empty")
		})
	}
}

func TestAtomBuildBadCoordinate(t *testing.T) {
	lines := []string{
		"    1.0a00    0.0000    0.0000 C   0  0",
		"    0.0000         x    0.0000 C   0  0",
		"    0.0000    0.0000    ------ C   0  0",
		"       NaN    0.0000    0.0000 C   0  0",
		"    0.0000      +Inf    0.0000 C   0  0",
		"    0.0000    0.0000  Infinity C   0  0",
		"    1.5e+2    0.0000    0.0000 C   0  0",
		"    0x1p-2    0.0000    0.0000 C   0  0",
	}
	for _, line := range lines {
		_, err := ParseAtom(line)
		assert.ErrorIs(t, err, ErrBadCoordinate, line)
		assert.ErrorIs(t, err, ErrBadNumericField, line)
	}
}

func TestAtomBuildFusedCoordinates(t *testing.T) {
	line := "-1234.5678-2345.6789-3456.7890 C   0  0  0  0"
	r, err := ParseAtom(line)
	require.NoError(t, err)
	assert.InDelta(t, -1234.5678, r.X, 1e-9)
	assert.InDelta(t, -2345.6789, r.Y, 1e-9)
	assert.InDelta(t, -3456.7890, r.Z, 1e-9)
	assert.Equal(t, "C", r.Symbol)
}

func TestAtomBuildResetsBetweenLines(t *testing.T) {
	var r AtomRecord
	require.NoError(t, r.Build(atomLine(0, 0, 0, "C", 1, 3, 1, 2, 1, 4, 1, 0, 0, 5, 1, 1)))
	require.Equal(t, 5, r.AtomMap)

	require.NoError(t, r.Build(atomLine(1, 1, 1, "N", 0, 0)))
	assert.Equal(t, AtomRecord{X: 1, Y: 1, Z: 1, Symbol: "N"}, r)
}

func TestCreateAtom(t *testing.T) {
	r, err := ParseAtom(atomLine(1, 2, 3, "N", 1, 3))
	require.NoError(t, err)

	a, err := r.CreateAtom(molecule.Factory{})
	require.NoError(t, err)
	assert.Equal(t, "N", a.Element)
	assert.Equal(t, 7, a.AtomicNumber)
	assert.Equal(t, 1, a.MassDifference)
	assert.Equal(t, 1, a.Charge)
	assert.False(t, a.Radical)
	assert.Equal(t, [3]float64{1, 2, 3}, [3]float64{a.X, a.Y, a.Z})
}

func TestCreateAtomRadical(t *testing.T) {
	r, err := ParseAtom(atomLine(0, 0, 0, "C", 0, 4))
	require.NoError(t, err)

	a, err := r.CreateAtom(molecule.Factory{})
	require.NoError(t, err)
	assert.Zero(t, a.Charge)
	assert.True(t, a.Radical)
}

func TestCreateAtomRejectedSymbol(t *testing.T) {
	r, err := ParseAtom(atomLine(0, 0, 0, "Q", 0, 0))
	require.NoError(t, err, "symbols are not validated while parsing")

	a, err := r.CreateAtom(molecule.Factory{})
	assert.Nil(t, a)
	assert.ErrorIs(t, err, molecule.ErrUnknownElement)
}

func TestCreateAtomUnknownChargeCode(t *testing.T) {
	r, err := ParseAtom(atomLine(0, 0, 0, "C", 0, 9))
	require.NoError(t, err)

	_, err = r.CreateAtom(molecule.Factory{})
	assert.ErrorIs(t, err, ErrUnknownChargeCode)
}

func TestCreateAtomWithoutBuildPanics(t *testing.T) {
	var r AtomRecord
	assert.Panics(t, func() { _, _ = r.CreateAtom(molecule.Factory{}) })

	_ = r.Build("too short")
	assert.Panics(t, func() { _, _ = r.CreateAtom(molecule.Factory{}) })
}

func TestFormalCharge(t *testing.T) {
	want := map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: radicalCharge, 5: -1, 6: -2, 7: -3}
	for code, charge := range want {
		got, err := FormalCharge(code)
		require.NoError(t, err)
		assert.Equal(t, charge, got, "code %d", code)
	}
	_, err := FormalCharge(-1)
	assert.ErrorIs(t, err, ErrUnknownChargeCode)
	_, err = FormalCharge(8)
	assert.ErrorIs(t, err, ErrUnknownChargeCode)
}
