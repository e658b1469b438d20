package models

import "time"

// KVEntry is a single durable key-value pair. Carts are stored as one row
// whose value is the serialized item list.
type KVEntry struct {
	Key       string    `gorm:"column:key;primaryKey;size:191"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
