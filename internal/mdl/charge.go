package mdl

import "fmt"

// radicalCharge is the FormalCharge sentinel for the doublet radical code.
const radicalCharge = 99

// FormalCharge converts an atom-block charge code into a formal charge.
// Code 4 (doublet radical) yields radicalCharge.
func FormalCharge(code int) (int, error) {
	switch code {
	case 0:
		return 0, nil
	case 1:
		return 3, nil
	case 2:
		return 2, nil
	case 3:
		return 1, nil
	case 4:
		return radicalCharge, nil
	case 5:
		return -1, nil
	case 6:
		return -2, nil
	case 7:
		return -3, nil
	}
	return 0, fmt.Errorf("%w %d", ErrUnknownChargeCode, code)
}
