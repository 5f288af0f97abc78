package mdl

import (
	"strconv"
	"strings"
)

// column returns line[from:to] with surrounding blanks removed. Bounds past
// the end of line are clamped.
func column(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// parseFloat accepts plain decimals only: an optional sign, digits and an
// optional fraction. NaN, Inf, exponents and hex floats are rejected.
func parseFloat(s string) (float64, bool) {
	if !isDecimal(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func isDecimal(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			digits++
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// countWords returns the number of whitespace-delimited words in s.
func countWords(s string) int {
	n := 0
	inWord := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			inWord = false
		} else if !inWord {
			inWord = true
			n++
		}
	}
	return n
}

// tokenizer hands out the whitespace-delimited words of a line starting at a
// fixed byte offset.
type tokenizer struct {
	line string
	pos  int
}

func newTokenizer(line string, pos int) *tokenizer {
	return &tokenizer{line: line, pos: pos}
}

// next returns the next word, or false once the line is exhausted.
func (t *tokenizer) next() (string, bool) {
	for t.pos < len(t.line) && isSpace(t.line[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.line) {
		return "", false
	}
	start := t.pos
	for t.pos < len(t.line) && !isSpace(t.line[t.pos]) {
		t.pos++
	}
	return t.line[start:t.pos], true
}
