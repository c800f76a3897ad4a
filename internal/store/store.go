package store

import (
	"context"
	"time"

	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// ReplaceBlockInput carries everything one atomic block replacement writes:
// the new record sets and the sync state row that fingerprints them.
type ReplaceBlockInput struct {
	State         schema.BlockSyncState
	Trades        []*schema.Trade
	DailyBalances []*schema.DailyBalance
}

// MergeMarketDaysInput carries one market feed merge: the parsed rows and
// the feed state row recording the processed file content.
type MergeMarketDaysInput struct {
	State schema.FeedSyncState
	Days  []*schema.MarketDay
}

// Store defines the interface for cache database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetBlockState retrieves the sync state for a block, or nil when the
	// block has never been synced
	GetBlockState(ctx context.Context, blockID string) (*schema.BlockSyncState, error)
	// ListBlockIDs returns the IDs of all blocks with sync state
	ListBlockIDs(ctx context.Context) ([]string, error)
	// ReplaceBlock atomically deletes a block's cached records, inserts the
	// new ones and upserts its sync state in a single transaction
	ReplaceBlock(ctx context.Context, input ReplaceBlockInput) error
	// DeleteBlock atomically removes a block's cached records and its sync
	// state
	DeleteBlock(ctx context.Context, blockID string) error

	// GetFeedState retrieves the sync state for a market feed file, or nil
	// when the file has never been imported
	GetFeedState(ctx context.Context, fileName string) (*schema.FeedSyncState, error)
	// MergeMarketDays inserts market rows for previously unseen dates,
	// leaves already cached dates untouched and upserts the feed state, all
	// in a single transaction. It returns the number of rows inserted.
	MergeMarketDays(ctx context.Context, input MergeMarketDaysInput) (int64, error)

	// GetTradesByBlock retrieves a block's cached trades ordered by open date
	GetTradesByBlock(ctx context.Context, blockID string) ([]*schema.Trade, error)
	// GetDailyBalancesByBlock retrieves a block's cached daily balances
	// ordered by date
	GetDailyBalancesByBlock(ctx context.Context, blockID string) ([]*schema.DailyBalance, error)
	// GetMarketDays retrieves cached market rows within [from, to] ordered
	// by date
	GetMarketDays(ctx context.Context, from, to time.Time) ([]*schema.MarketDay, error)
}
