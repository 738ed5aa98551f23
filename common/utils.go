package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseDecimal reads a plain non-negative base-10 integer, as typed on a
// command line or in a query string.
func ParseDecimal(s string) (*big.Int, error) {
	if s == "" || strings.ContainsAny(s, "+-_") {
		return nil, fmt.Errorf("failed to parse decimal big int %q", s)
	}
	res, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("failed to parse decimal big int %q", s)
	}
	return res, nil
}

// ParseQuantity accepts either form: "0x"-prefixed hex or plain decimal.
func ParseQuantity(s string) (*big.Int, error) {
	if strings.HasPrefix(s, HexPrefix) {
		return ParseHex(s)
	}
	return ParseDecimal(s)
}

// FormatDecimal renders v in base 10 grouped by thousands, e.g. 100,000,000.
func FormatDecimal(v *big.Int) string {
	if v == nil {
		return "0"
	}
	// BigComma divides its argument in place
	return humanize.BigComma(new(big.Int).Set(v))
}
