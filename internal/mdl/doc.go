// Package mdl parses the atom and bond lines of MDL V2000 molfiles.
//
// Both parsers work on one line at a time and keep no state between calls.
// The fixed columns of the format (coordinates, atom numbers, bond type) are
// read by position; everything after them is read as whitespace-delimited
// tokens, because the number of trailing columns differs between the
// historical writers of the format:
//
//   - atom lines come in a short form (up to 13 tokens) and a long form
//     (16 tokens, with the H0 designator and two unused columns);
//   - bond lines come with 3, 4, 7 or some other number of tokens, where
//     the 7-token form has one unused column before topology.
//
// A line that simply stops early is accepted; a token that is present but
// not a number is rejected. Failures are *RecordError values wrapping one of
// the Err* sentinels, so callers can test them with errors.Is.
package mdl
