package models

import "time"

// KVEntry is one opaque blob in the durable key-value table.
type KVEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:191" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
