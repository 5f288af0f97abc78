package mdl

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error returned by Build wraps exactly one of
// them inside a *RecordError.
var (
	// ErrMalformedRecord is returned when a record is too short or has too
	// few tokens to be parsed at all.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrBadNumericField is returned when a present token is not a number.
	ErrBadNumericField = errors.New("bad numeric field")

	// ErrBadCoordinate is returned for a non-numeric x, y or z column.
	ErrBadCoordinate = fmt.Errorf("bad coordinate: %w", ErrBadNumericField)

	// ErrInvalidAtomIndex is returned when a bond end is not a number in
	// 1..atomCount.
	ErrInvalidAtomIndex = errors.New("invalid atom index")

	// ErrInvalidBondType is returned when the bond type column is not in 1..8.
	ErrInvalidBondType = errors.New("invalid bond type")

	// ErrSelfBondRejected is returned when both bond ends name the same atom
	// and self bonds are not allowed.
	ErrSelfBondRejected = errors.New("self bond rejected")

	// ErrUnrecognisedBondType is returned by BondOrderForQuery.
	ErrUnrecognisedBondType = errors.New("unrecognised bond type")

	// ErrUnknownChargeCode is returned for charge codes outside 0..7.
	ErrUnknownChargeCode = errors.New("unknown charge code")
)

// RecordError reports a failure to parse one atom or bond line.
type RecordError struct {
	Kind  error
	Field string
	Token string
	Line  string
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: '%s'", e.Kind, e.Line)
	}
	return fmt.Sprintf("%s: %s '%s' in '%s'", e.Kind, e.Field, e.Token, e.Line)
}

func (e *RecordError) Unwrap() error { return e.Kind }

func recordErr(kind error, line string) error {
	return &RecordError{Kind: kind, Line: line}
}

func fieldErr(kind error, field, token, line string) error {
	return &RecordError{Kind: kind, Field: field, Token: token, Line: line}
}
