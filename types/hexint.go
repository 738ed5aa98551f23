package types

import (
	"database/sql/driver"
	"fmt"
	"math/big"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	"hexint-tracker/common"
)

// HexBigInt is a big integer field that serializes as a "0x"-prefixed
// lower-case hex string in JSON, YAML, TOML (text) and SQL columns.
// The zero value is 0.
type HexBigInt struct {
	val *big.Int
}

func NewHexBigInt(val *big.Int) HexBigInt {
	if val == nil {
		return HexBigInt{}
	}
	return HexBigInt{val: new(big.Int).Set(val)}
}

func HexBigIntFrom64(v uint64) HexBigInt {
	return HexBigInt{val: new(big.Int).SetUint64(v)}
}

// BigInt returns a copy of the value.
func (h HexBigInt) BigInt() *big.Int {
	if h.val == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(h.val)
}

func (h HexBigInt) Cmp(other HexBigInt) int {
	return h.BigInt().Cmp(other.BigInt())
}

func (h HexBigInt) String() string {
	return common.LowerHex.Encode(h.val)
}

func (h *HexBigInt) decode(format, s string) error {
	v, err := common.LowerHex.Decode(s)
	if err != nil {
		return fmt.Errorf("types: cannot decode %s into HexBigInt: %w", format, err)
	}
	h.val = v
	return nil
}

func (h HexBigInt) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HexBigInt) UnmarshalText(text []byte) error {
	return h.decode("text", string(text))
}

// UnmarshalTOML takes precedence over UnmarshalText in BurntSushi/toml,
// which would otherwise hand native integers over as decimal text.
func (h *HexBigInt) UnmarshalTOML(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("types: cannot decode toml %T %v into HexBigInt: not a string", value, value)
	}
	return h.decode("toml", s)
}

func (h HexBigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HexBigInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("types: cannot decode json %s into HexBigInt: %w", data, err)
	}
	return h.decode("json", s)
}

func (h HexBigInt) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}

func (h *HexBigInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("types: cannot decode yaml node at line %d into HexBigInt: not a scalar", node.Line)
	}
	return h.decode("yaml", node.Value)
}

func (h *HexBigInt) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		h.val = nil
		return nil
	case []byte:
		return h.decode("sql", string(v))
	case string:
		return h.decode("sql", v)
	default:
		return fmt.Errorf("types: cannot scan %T into HexBigInt", value)
	}
}

func (h HexBigInt) Value() (driver.Value, error) {
	return h.String(), nil
}
