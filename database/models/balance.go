package models

import (
	"time"

	"hexint-tracker/types"
)

// Balance is one observation of a watched account at a block height.
type Balance struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	Name      string          `gorm:"size:32" json:"name"`
	Address   string          `gorm:"size:42;index:idx_address_height" json:"address"`
	Height    uint64          `gorm:"index:idx_address_height" json:"height"`
	Amount    types.HexBigInt `gorm:"size:80" json:"amount"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}
