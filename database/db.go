package database

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"hexint-tracker/common"
	"hexint-tracker/config"
	"hexint-tracker/database/models"
)

type RawDB struct {
	db *gorm.DB

	lastTrackedBlockNum uint64
	lock                sync.RWMutex

	logger *zap.SugaredLogger
}

func New(cfg *config.DBConfig) *RawDB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Password, cfg.Host, cfg.DB)
	rawDB, err := Open(mysql.Open(dsn), cfg.StartNum)
	if err != nil {
		panic(err)
	}
	return rawDB
}

// Open migrates the schema on any gorm dialector. startNum is the first
// block to track when nothing has been tracked yet.
func Open(dialector gorm.Dialector, startNum uint64) (*RawDB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&models.Balance{}, &models.Meta{}); err != nil {
		return nil, err
	}

	start := startNum
	if start > 0 {
		start--
	}
	var lastTrackedMeta models.Meta
	if err = db.Where(models.Meta{Key: models.LastTrackedBlockKey}).
		Attrs(models.Meta{Val: common.FormatHexLower(new(big.Int).SetUint64(start))}).
		FirstOrCreate(&lastTrackedMeta).Error; err != nil {
		return nil, err
	}

	rawDB := &RawDB{
		db:     db,
		logger: zap.S().Named("[db]"),
	}

	lastTracked, err := common.ParseHex(lastTrackedMeta.Val)
	if err != nil || !lastTracked.IsUint64() {
		rawDB.logger.Warnf("Invalid last tracked block meta [%s], fall back to [%d]", lastTrackedMeta.Val, start)
		rawDB.lastTrackedBlockNum = start
	} else {
		rawDB.lastTrackedBlockNum = lastTracked.Uint64()
	}

	return rawDB, nil
}

func (db *RawDB) Close() {
	sqlDB, err := db.db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		db.logger.Errorf("Close db error: [%s]", err.Error())
	}
}

func (db *RawDB) GetLastTrackedBlockNum() uint64 {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.lastTrackedBlockNum
}

// SetLastTrackedBlockNum stores num and only then updates the cached value.
func (db *RawDB) SetLastTrackedBlockNum(num uint64) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if err := saveLastTracked(db.db, num); err != nil {
		db.logger.Errorf("Save last tracked block [%d] error: [%s]", num, err.Error())
		return err
	}
	db.lastTrackedBlockNum = num
	return nil
}

// SaveTrackedBlock writes the balances seen at height together with the
// new last tracked block in one transaction. Nothing is written if any
// part fails, so a retry of the same height never duplicates rows.
func (db *RawDB) SaveTrackedBlock(height uint64, balances []*models.Balance) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	err := db.db.Transaction(func(tx *gorm.DB) error {
		if len(balances) > 0 {
			if err := tx.Create(&balances).Error; err != nil {
				return err
			}
		}
		return saveLastTracked(tx, height)
	})
	if err != nil {
		db.logger.Errorf("Save tracked block [%d] error: [%s]", height, err.Error())
		return err
	}
	db.lastTrackedBlockNum = height
	return nil
}

func saveLastTracked(tx *gorm.DB, num uint64) error {
	val := common.FormatHexLower(new(big.Int).SetUint64(num))
	return tx.Model(&models.Meta{}).
		Where(models.Meta{Key: models.LastTrackedBlockKey}).
		Update("val", val).Error
}

func (db *RawDB) GetLatestBalance(address string) (*models.Balance, bool) {
	var balance models.Balance
	err := db.db.Where("address = ?", address).Order("height desc, id desc").First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	if err != nil {
		db.logger.Errorf("Query latest balance of [%s] error: [%s]", address, err.Error())
		return nil, false
	}
	return &balance, true
}

func (db *RawDB) GetBalancesSince(address string, since time.Time) []*models.Balance {
	balances := make([]*models.Balance, 0)
	if err := db.db.Where("address = ? AND created_at >= ?", address, since).
		Order("height asc, id asc").
		Find(&balances).Error; err != nil {
		db.logger.Errorf("Query balances of [%s] since [%s] error: [%s]", address, since.Format(time.DateTime), err.Error())
	}
	return balances
}
