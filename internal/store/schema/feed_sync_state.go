package schema

import (
	"time"

	"gorm.io/datatypes"
)

// FeedSyncState represents the feed_sync_state table - the fingerprint of
// the last imported content of a market feed file, used to short-circuit
// re-import of unchanged files.
type FeedSyncState struct {
	// FileName is the feed file name under the market data folder
	FileName string `gorm:"column:file_name;primaryKey;type:text"`
	// ContentHash is the fingerprint of the last imported file content
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// MaxRetainedDate is the newest session date observed in the feed
	MaxRetainedDate datatypes.Date `gorm:"column:max_retained_date"`
	// SyncedAt is the time the file content was last processed
	SyncedAt time.Time `gorm:"column:synced_at;not null"`
}

func (FeedSyncState) TableName() string {
	return "feed_sync_state"
}
