// Package sqlite is the SQLite-backed storage.Backend: one row per key in the
// kv_entries table.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type entry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (entry) TableName() string {
	return "kv_entries"
}

type Backend struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// one connection: a second one would see a different ":memory:" database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := Migrate(context.Background(), sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}

	return &Backend{db: db}, nil
}

func (b *Backend) Get(key string) ([]byte, bool, error) {
	var e entry
	err := b.db.Where("key = ?", key).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return e.Value, true, nil
}

func (b *Backend) Set(key string, value []byte) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
