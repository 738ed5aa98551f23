package models

import (
	"gorm.io/gorm"
)

const (
	LastTrackedBlockKey = "last_tracked_block"
)

type Meta struct {
	gorm.Model
	Key string `gorm:"size:64;unique"`
	Val string
}
