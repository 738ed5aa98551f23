package types

import (
	stdjson "encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	"hexint-tracker/common"
)

type account struct {
	Name    string    `json:"name" yaml:"name" toml:"name"`
	Balance HexBigInt `json:"balance" yaml:"balance" toml:"balance"`
}

func TestHexBigIntJSON(t *testing.T) {
	acc := account{Name: "a", Balance: NewHexBigInt(big.NewInt(100000000))}

	data, err := json.Marshal(acc)
	assert.Equal(t, err, nil)
	assert.Equal(t, string(data), `{"name":"a","balance":"0x5f5e100"}`)

	stdData, err := stdjson.Marshal(acc)
	assert.Equal(t, err, nil)
	assert.Equal(t, string(stdData), string(data))

	var decoded account
	assert.Equal(t, json.Unmarshal([]byte(`{"name":"a","balance":"0x5F5E100"}`), &decoded), nil)
	assert.Equal(t, decoded.Balance.BigInt().Int64(), int64(100000000))

	var stdDecoded account
	assert.Equal(t, stdjson.Unmarshal(data, &stdDecoded), nil)
	assert.Equal(t, stdDecoded.Balance.Cmp(acc.Balance), 0)
}

func TestHexBigIntJSONNull(t *testing.T) {
	acc := account{Balance: HexBigIntFrom64(7)}
	assert.Equal(t, json.Unmarshal([]byte(`{"balance":null}`), &acc), nil)
	assert.Equal(t, acc.Balance.String(), "0x7")
}

func TestHexBigIntJSONInvalid(t *testing.T) {
	for _, input := range []string{
		`{"balance":"0xZZ"}`,
		`{"balance":""}`,
		`{"balance":"-0x1"}`,
	} {
		var acc account
		err := json.Unmarshal([]byte(input), &acc)
		var perr *common.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Unmarshal(%s) error = %v, want wrapped *common.ParseError", input, err)
		}
	}

	var acc account
	assert.NotEqual(t, json.Unmarshal([]byte(`{"balance":100}`), &acc), nil)
}

func TestHexBigIntYAML(t *testing.T) {
	var acc account
	assert.Equal(t, yaml.Unmarshal([]byte("name: a\nbalance: 0x52B7D2DCC80CD2E4000000\n"), &acc), nil)
	want, _ := new(big.Int).SetString("100000000000000000000000000", 10)
	assert.Equal(t, acc.Balance.BigInt().Cmp(want), 0)

	data, err := yaml.Marshal(acc)
	assert.Equal(t, err, nil)

	var again account
	assert.Equal(t, yaml.Unmarshal(data, &again), nil)
	assert.Equal(t, again.Balance.String(), "0x52b7d2dcc80cd2e4000000")

	assert.NotEqual(t, yaml.Unmarshal([]byte("balance: [1, 2]\n"), &again), nil)
	assert.NotEqual(t, yaml.Unmarshal([]byte("balance: nothex\n"), &again), nil)
}

func TestHexBigIntTOML(t *testing.T) {
	var acc account
	_, err := toml.Decode("name = \"a\"\nbalance = \"0x1312D00\"\n", &acc)
	assert.Equal(t, err, nil)
	assert.Equal(t, acc.Balance.BigInt().Int64(), int64(20000000))

	_, err = toml.Decode("balance = \"0x\"\n", &acc)
	assert.NotEqual(t, err, nil)

	// native toml integers are not hex strings
	for _, doc := range []string{"balance = 0x5f5e100\n", "balance = 100\n", "balance = 1.5\n"} {
		var a account
		_, err = toml.Decode(doc, &a)
		assert.NotEqual(t, err, nil)
		assert.Equal(t, a.Balance.String(), "0x0")
	}
}

func TestHexBigIntSQL(t *testing.T) {
	v, err := HexBigIntFrom64(20000000).Value()
	assert.Equal(t, err, nil)
	assert.Equal(t, v, "0x1312d00")

	var h HexBigInt
	assert.Equal(t, h.Scan([]byte("0x1312d00")), nil)
	assert.Equal(t, h.BigInt().Int64(), int64(20000000))
	assert.Equal(t, h.Scan("0x5f5e100"), nil)
	assert.Equal(t, h.BigInt().Int64(), int64(100000000))
	assert.Equal(t, h.Scan(nil), nil)
	assert.Equal(t, h.String(), "0x0")

	assert.NotEqual(t, h.Scan(int64(1)), nil)
	assert.NotEqual(t, h.Scan("0xnope"), nil)
}

func TestHexBigIntValueSemantics(t *testing.T) {
	src := big.NewInt(10)
	h := NewHexBigInt(src)
	src.SetInt64(11)
	assert.Equal(t, h.String(), "0xa")

	h.BigInt().SetInt64(12)
	assert.Equal(t, h.String(), "0xa")

	var zero HexBigInt
	assert.Equal(t, zero.String(), "0x0")
	assert.Equal(t, zero.BigInt().Sign(), 0)
}
