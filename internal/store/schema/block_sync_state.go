package schema

import (
	"time"

	"gorm.io/datatypes"
)

// BlockSchemaVersion is stamped on every block sync state row so a future
// record-shape change can force a full re-sync of all blocks.
const BlockSchemaVersion = 1

// BlockSyncState represents the block_sync_state table - what was last
// synced for a block and with what fingerprints. A row exists if and only
// if the block currently has cached records.
type BlockSyncState struct {
	// BlockID is the block folder name
	BlockID string `gorm:"column:block_id;primaryKey;type:text"`
	// PrimaryHash is the fingerprint of the trade log content that produced
	// the currently cached records
	PrimaryHash string `gorm:"column:primary_hash;not null;type:text"`
	// SecondaryHashes maps companion file names to their fingerprints
	SecondaryHashes datatypes.JSONType[map[string]string] `gorm:"column:secondary_hashes"`
	// SchemaVersion is the record shape version at sync time
	SchemaVersion int `gorm:"column:schema_version;not null"`
	// SyncedAt is the time of the last successful sync
	SyncedAt time.Time `gorm:"column:synced_at;not null"`
}

func (BlockSyncState) TableName() string {
	return "block_sync_state"
}
