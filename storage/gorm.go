package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KvSnapshot is the single MySQL table behind GormStore: one row per
// snapshot key, payload stored as a JSON blob.
type KvSnapshot struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     []byte    `gorm:"type:longblob" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KvSnapshot) TableName() string {
	return "kv_snapshots"
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&KvSnapshot{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, key string, out any) error {
	var row KvSnapshot
	err := s.db.WithContext(ctx).Take(&row, "`key` = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	return json.Unmarshal(row.Value, out)
}

func (s *GormStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	row := KvSnapshot{Key: key, Value: raw}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
