package entity

import "time"

// StorageEntry is one slot of the keyed storage when it is backed by PostgreSQL.
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for StorageEntry
func (StorageEntry) TableName() string {
	return "storage_entries"
}
