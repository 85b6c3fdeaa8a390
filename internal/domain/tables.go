package domain

import "time"

// KVBlob one serialized collection in SQL-backed storage
type KVBlob struct {
	BlobKey   string    `gorm:"primaryKey;size:64" json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (KVBlob) TableName() string {
	return "kv_blob"
}

var Tables = []interface{}{
	&KVBlob{},
}
