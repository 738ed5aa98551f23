package bot

import (
	"math/big"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"hexint-tracker/database/models"
	"hexint-tracker/types"
)

type balances map[string]*models.Balance

func (b balances) GetLatestBalance(address string) (*models.Balance, bool) {
	balance, ok := b[address]
	return balance, ok
}

func TestReplyFor(t *testing.T) {
	db := balances{
		"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t": {
			Height: 100,
			Amount: types.NewHexBigInt(big.NewInt(20000000)),
		},
	}

	assert.Equal(t, replyFor(db, "hex", "0x5F5E100"), "0x5F5E100\nDecimal: 100,000,000\nHex: 0x5f5e100")
	assert.Equal(t, replyFor(db, "hex", " 100000000 "), "100000000\nDecimal: 100,000,000\nHex: 0x5f5e100")
	assert.Equal(t, strings.HasPrefix(replyFor(db, "hex", "0xZZ"), "Invalid value: failed to parse hex big int"), true)
	assert.Equal(t, strings.HasPrefix(replyFor(db, "hex", ""), "You need to specify a value"), true)

	assert.Equal(t, replyFor(db, "balance", "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"),
		"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t at block [100]: 20,000,000 (0x1312d00)")
	assert.Equal(t, replyFor(db, "balance", "TKVnVyJiTzyCDgTkZRYc5LM4q8B7xXEbh5"),
		"No balance tracked for TKVnVyJiTzyCDgTkZRYc5LM4q8B7xXEbh5")

	assert.Equal(t, strings.Contains(replyFor(db, "start", ""), "/hex"), true)
	assert.Equal(t, replyFor(db, "volume", ""), "Unknown command")
}
