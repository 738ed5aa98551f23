package common

import "math/big"

// Codec converts values to and from their string form.
// Implementations hold no state and are safe for concurrent use.
type Codec[T any] interface {
	Encode(v T) string
	Decode(s string) (T, error)
}

// HexCodec is the "0x"-prefixed hex codec for big integers.
type HexCodec struct {
	Upper bool
}

var (
	LowerHex Codec[*big.Int] = HexCodec{}
	UpperHex Codec[*big.Int] = HexCodec{Upper: true}
)

func (c HexCodec) Encode(v *big.Int) string {
	return formatHex(v, c.Upper)
}

func (c HexCodec) Decode(s string) (*big.Int, error) {
	return ParseHex(s)
}
