package common

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

const HexPrefix = "0x"

// ParseError reports an input that is not a "0x"-optional hex quantity.
// Pos is the byte offset of the first bad character in Input, or -1 when
// there are no digits at all.
type ParseError struct {
	Input string
	Pos   int
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("failed to parse hex big int %q: no hex digits", e.Input)
	}
	r, _ := utf8.DecodeRuneInString(e.Input[e.Pos:])
	return fmt.Sprintf("failed to parse hex big int %q: invalid character %q at offset %d",
		e.Input, r, e.Pos)
}

// ParseHex parses s as a non-negative base-16 integer. A single lowercase
// "0x" prefix is optional; digits are case-insensitive.
func ParseHex(s string) (*big.Int, error) {
	digits, hasPrefix := strings.CutPrefix(s, HexPrefix)
	if len(digits) == 0 {
		return nil, &ParseError{Input: s, Pos: -1}
	}

	offset := 0
	if hasPrefix {
		offset = len(HexPrefix)
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return nil, &ParseError{Input: s, Pos: offset + i}
		}
	}

	// SetString accepts a sign, so it only ever sees validated digits
	res, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, &ParseError{Input: s, Pos: -1}
	}
	return res, nil
}

// MustParseHex is ParseHex for constants; it panics on bad input.
func MustParseHex(s string) *big.Int {
	v, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return v
}

func FormatHexUpper(v *big.Int) string {
	return formatHex(v, true)
}

func FormatHexLower(v *big.Int) string {
	return formatHex(v, false)
}

func formatHex(v *big.Int, upper bool) string {
	if v == nil {
		return HexPrefix + "0"
	}

	sign := ""
	digits := v.Text(16)
	if v.Sign() < 0 {
		sign, digits = "-", digits[1:]
	}
	if upper {
		digits = strings.ToUpper(digits)
	}
	return sign + HexPrefix + digits
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
