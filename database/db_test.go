package database

import (
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"gorm.io/driver/sqlite"
	"hexint-tracker/database/models"
	"hexint-tracker/types"
)

func openTestDB(t *testing.T, path string, startNum uint64) *RawDB {
	db, err := Open(sqlite.Open(path), startNum)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestLastTrackedBlockNum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")

	db := openTestDB(t, path, 100)
	assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(99))

	assert.Equal(t, db.SetLastTrackedBlockNum(0x5f5e100), nil)
	assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(100000000))

	var meta models.Meta
	db.db.Where(models.Meta{Key: models.LastTrackedBlockKey}).First(&meta)
	assert.Equal(t, meta.Val, "0x5f5e100")
	db.Close()

	// start_num is only used until something has been tracked
	reopened := openTestDB(t, path, 1)
	defer reopened.Close()
	assert.Equal(t, reopened.GetLastTrackedBlockNum(), uint64(100000000))
}

func TestBalances(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "tracker.db"), 0)
	defer db.Close()

	huge, _ := new(big.Int).SetString("100000000000000000000000000", 10)
	for height, amount := range []*big.Int{big.NewInt(1), big.NewInt(20000000), huge} {
		err := db.SaveTrackedBlock(uint64(height+1), []*models.Balance{{
			Name:    "usdt",
			Address: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
			Height:  uint64(height + 1),
			Amount:  types.NewHexBigInt(amount),
		}})
		assert.Equal(t, err, nil)
		assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(height+1))
	}

	latest, ok := db.GetLatestBalance("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	assert.Equal(t, ok, true)
	assert.Equal(t, latest.Height, uint64(3))
	assert.Equal(t, latest.Amount.BigInt().Cmp(huge), 0)

	var raw string
	db.db.Raw("SELECT amount FROM balances WHERE height = ?", 2).Scan(&raw)
	assert.Equal(t, raw, "0x1312d00")

	history := db.GetBalancesSince("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", time.Now().Add(-time.Hour))
	assert.Equal(t, len(history), 3)
	assert.Equal(t, history[0].Amount.String(), "0x1")

	assert.Equal(t, len(db.GetBalancesSince("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", time.Now().Add(time.Hour))), 0)

	_, ok = db.GetLatestBalance("TKVnVyJiTzyCDgTkZRYc5LM4q8B7xXEbh5")
	assert.Equal(t, ok, false)
}

func countBalances(t *testing.T, db *RawDB) int64 {
	var n int64
	if err := db.db.Model(&models.Balance{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSaveTrackedBlockRollback(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "tracker.db"), 10)
	defer db.Close()

	first := &models.Balance{ID: 1, Name: "usdt", Address: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", Height: 10, Amount: types.HexBigIntFrom64(1)}
	assert.Equal(t, db.SaveTrackedBlock(10, []*models.Balance{first}), nil)

	// the second row reuses an existing primary key, so the batch fails
	batch := []*models.Balance{
		{ID: 5, Name: "usdt", Address: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", Height: 11, Amount: types.HexBigIntFrom64(2)},
		{ID: 1, Name: "hot", Address: "0x00000000000000000000000000000000000000aa", Height: 11, Amount: types.HexBigIntFrom64(3)},
	}
	for i := 0; i < 2; i++ {
		assert.NotEqual(t, db.SaveTrackedBlock(11, batch), nil)
		assert.Equal(t, countBalances(t, db), int64(1))
		assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(10))
	}

	var meta models.Meta
	db.db.Where(models.Meta{Key: models.LastTrackedBlockKey}).First(&meta)
	assert.Equal(t, meta.Val, "0xa")
}

func TestSetLastTrackedBlockNumFailure(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "tracker.db"), 10)
	assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(9))
	db.Close()

	assert.NotEqual(t, db.SetLastTrackedBlockNum(20), nil)
	assert.Equal(t, db.GetLastTrackedBlockNum(), uint64(9))
}
